package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jabuddie/Custom-Jira-Kanban-Metrics/internal/report"
	"github.com/jabuddie/Custom-Jira-Kanban-Metrics/internal/stats"
	"github.com/jabuddie/Custom-Jira-Kanban-Metrics/internal/visuals"
)

var throughputMonths int

var throughputCmd = &cobra.Command{
	Use:   "throughput",
	Short: "Monthly throughput of resolved issues",
	RunE: func(cmd *cobra.Command, args []string) error {
		issues, err := jiraClient.DoneIssues(project, throughputMonths)
		if err != nil {
			return fmt.Errorf("fetching resolved issues: %w", err)
		}

		buckets := stats.MonthlyThroughput(issues)

		fmt.Printf("\nMonthly throughput - %s, last %d months\n\n", project, throughputMonths)
		if err := report.ThroughputTable(os.Stdout, buckets); err != nil {
			return err
		}
		fmt.Printf("Average throughput: %.1f issues/month\n", stats.AverageThroughput(issues))

		categories := stats.CategorySummary(issues)
		if len(categories) > 0 {
			fmt.Println("\nKTLO split:")
			if err := report.CategoryTable(os.Stdout, categories); err != nil {
				return err
			}
		}

		if charts {
			fmt.Println()
			fmt.Println(visuals.Fence(visuals.ThroughputChart(buckets, project)))
		}

		return nil
	},
}

func init() {
	throughputCmd.Flags().IntVar(&throughputMonths, "months", 6, "lookback window in months")
	rootCmd.AddCommand(throughputCmd)
}
