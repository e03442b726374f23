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
	leadMonths      int
	leadExcludeOver int
	leadZThreshold  float64
)

var leadTimeCmd = &cobra.Command{
	Use:   "leadtime",
	Short: "Lead time trend, per-assignee averages, and outliers",
	RunE: func(cmd *cobra.Command, args []string) error {
		issues, err := jiraClient.DoneIssues(project, leadMonths)
		if err != nil {
			return fmt.Errorf("fetching resolved issues: %w", err)
		}

		records := stats.LeadTimeRecords(issues)
		trend := stats.MonthlyLeadTime(records, leadExcludeOver)

		fmt.Printf("\nLead time - %s, last %d months (%d resolved issues)\n\n", project, leadMonths, len(records))
		if err := report.TrendTable(os.Stdout, trend); err != nil {
			return err
		}

		fmt.Println("\nBy assignee:")
		if err := report.AssigneeTable(os.Stdout, stats.LeadTimeByAssignee(records)); err != nil {
			return err
		}

		outliers := stats.LeadTimeOutliers(records, leadZThreshold)
		if len(outliers) > 0 {
			fmt.Printf("\nOutliers (|z| >= %.1f):\n", leadZThreshold)
			if err := report.OutliersTable(os.Stdout, outliers); err != nil {
				return err
			}
		}

		if charts {
			fmt.Println()
			fmt.Println(visuals.Fence(visuals.TrendChart(trend,
				fmt.Sprintf("Lead Time Trend - %s", project), "Avg Lead Time (Days)")))
		}

		return nil
	},
}

func init() {
	leadTimeCmd.Flags().IntVar(&leadMonths, "months", 6, "lookback window in months")
	leadTimeCmd.Flags().IntVar(&leadExcludeOver, "exclude-over", 750, "drop records older than this many days from the trend (0 disables)")
	leadTimeCmd.Flags().Float64Var(&leadZThreshold, "z", 2.0, "z-score threshold for outliers")
	rootCmd.AddCommand(leadTimeCmd)
}
