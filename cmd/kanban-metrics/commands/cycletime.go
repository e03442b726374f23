package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jabuddie/Custom-Jira-Kanban-Metrics/internal/report"
	"github.com/jabuddie/Custom-Jira-Kanban-Metrics/internal/stats"
	"github.com/jabuddie/Custom-Jira-Kanban-Metrics/internal/visuals"
)

var (
	cycleMonths      int
	cycleExcludeOver int
)

var cycleTimeCmd = &cobra.Command{
	Use:   "cycletime",
	Short: "Cycle time (first In Progress to resolution) trend and averages",
	RunE: func(cmd *cobra.Command, args []string) error {
		issues, err := jiraClient.CycleTimeIssues(project, cycleMonths)
		if err != nil {
			return fmt.Errorf("fetching issues with changelog: %w", err)
		}

		records := stats.CycleTimeRecords(issues, cfg.TrackedStatus)
		trend := stats.MonthlyCycleTime(records, cycleExcludeOver)

		fmt.Printf("\nCycle time - %s, last %d months (%d measurable issues)\n\n", project, cycleMonths, len(records))
		if err := report.TrendTable(os.Stdout, trend); err != nil {
			return err
		}

		fmt.Println("\nBy assignee:")
		if err := report.AssigneeTable(os.Stdout, stats.CycleTimeByAssignee(records)); err != nil {
			return err
		}

		if charts {
			fmt.Println()
			fmt.Println(visuals.Fence(visuals.TrendChart(trend,
				fmt.Sprintf("Cycle Time Trend - %s", project), "Avg Cycle Time (Days)")))
		}

		return nil
	},
}

func init() {
	cycleTimeCmd.Flags().IntVar(&cycleMonths, "months", 6, "lookback window in months")
	cycleTimeCmd.Flags().IntVar(&cycleExcludeOver, "exclude-over", 750, "drop records older than this many days from the trend (0 disables)")
	rootCmd.AddCommand(cycleTimeCmd)
}
