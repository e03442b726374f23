package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jabuddie/Custom-Jira-Kanban-Metrics/internal/report"
	"github.com/jabuddie/Custom-Jira-Kanban-Metrics/internal/stats"
	"github.com/jabuddie/Custom-Jira-Kanban-Metrics/internal/visuals"
)

var (
	wipDays  int
	wipMonth string
	wipTable bool
)

var wipCmd = &cobra.Command{
	Use:   "wip",
	Short: "Work-in-progress census over the last N days",
	Long: `Reconstructs In Progress intervals from issue changelogs and reports the
daily WIP count over the lookback window. With --month, additionally lists
every issue that had active WIP time during that calendar month.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		observationEnd := time.Now().UTC()

		issues, err := jiraClient.WipIssues(project, cfg.TrackedStatus, wipDays)
		if err != nil {
			return fmt.Errorf("fetching WIP issues: %w", err)
		}

		intervals, inferred := stats.BuildIntervals(issues, observationEnd, extractOptions())

		rangeStart := observationEnd.AddDate(0, 0, -(wipDays - 1))
		points, err := stats.DailyCensus(intervals, rangeStart, observationEnd)
		if err != nil {
			return err
		}

		fmt.Printf("\nDaily %s WIP - last %d days\n\n", project, wipDays)
		if wipTable {
			if err := report.DailyWipTable(os.Stdout, points); err != nil {
				return err
			}
		}
		report.CensusSummaryLines(os.Stdout, points)
		fmt.Println()
		report.InferredList(os.Stdout, inferred)

		if charts {
			fmt.Println()
			fmt.Println(visuals.Fence(visuals.DailyWipChart(points, project)))
			monthly := stats.MonthlyAverage(points)
			if len(monthly) > 1 {
				fmt.Println(visuals.Fence(visuals.MonthlyWipChart(monthly, project)))
			}
		}

		if wipMonth != "" {
			window, err := stats.ParseMonth(wipMonth)
			if err != nil {
				return err
			}
			active, err := stats.IssuesActiveInWindow(intervals, window.Start, window.End)
			if err != nil {
				return err
			}
			fmt.Printf("\nIssues in progress during %s: %d\n\n", wipMonth, len(active))
			if err := report.ActiveIssuesTable(os.Stdout, active); err != nil {
				return err
			}
		}

		return nil
	},
}

func init() {
	wipCmd.Flags().IntVar(&wipDays, "days", 30, "lookback window in days")
	wipCmd.Flags().StringVar(&wipMonth, "month", "", "list issues active in this month (YYYY-MM)")
	wipCmd.Flags().BoolVar(&wipTable, "table", false, "print the full daily WIP table")
	rootCmd.AddCommand(wipCmd)
}
