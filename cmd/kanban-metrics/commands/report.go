package commands

import (
	"fmt"
	"time"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jabuddie/Custom-Jira-Kanban-Metrics/internal/jira"
	"github.com/jabuddie/Custom-Jira-Kanban-Metrics/internal/report"
	"github.com/jabuddie/Custom-Jira-Kanban-Metrics/internal/stats"
	"github.com/jabuddie/Custom-Jira-Kanban-Metrics/internal/visuals"
)

var (
	reportMonths int
	reportDays   int
	reportNoOpen bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Full HTML report (WIP, throughput, lead time, cycle time)",
	RunE: func(cmd *cobra.Command, args []string) error {
		observationEnd := time.Now().UTC()

		var doneIssues, wipIssues, cycleIssues []jira.Issue
		var g errgroup.Group
		g.Go(func() error {
			var err error
			doneIssues, err = jiraClient.DoneIssues(project, reportMonths)
			return err
		})
		g.Go(func() error {
			var err error
			wipIssues, err = jiraClient.WipIssues(project, cfg.TrackedStatus, reportDays)
			return err
		})
		g.Go(func() error {
			var err error
			cycleIssues, err = jiraClient.CycleTimeIssues(project, reportMonths)
			return err
		})
		if err := g.Wait(); err != nil {
			return fmt.Errorf("fetching report data: %w", err)
		}

		intervals, inferred := stats.BuildIntervals(wipIssues, observationEnd, extractOptions())
		rangeStart := observationEnd.AddDate(0, 0, -(reportDays - 1))
		points, err := stats.DailyCensus(intervals, rangeStart, observationEnd)
		if err != nil {
			return err
		}

		active, err := stats.IssuesActiveInWindow(intervals,
			stats.SnapToDayStart(observationEnd), stats.SnapToDayEnd(observationEnd))
		if err != nil {
			return err
		}

		throughput := stats.MonthlyThroughput(doneIssues)
		leadTrend := stats.MonthlyLeadTime(stats.LeadTimeRecords(doneIssues), leadExcludeOver)
		cycleTrend := stats.MonthlyCycleTime(stats.CycleTimeRecords(cycleIssues, cfg.TrackedStatus), cycleExcludeOver)

		data := report.HTMLReport{
			Project:        project,
			GeneratedAt:    observationEnd,
			WipSummary:     stats.Summarize(points),
			DailyWipChart:  visuals.DailyWipChart(points, project),
			MonthlyChart:   visuals.MonthlyWipChart(stats.MonthlyAverage(points), project),
			Throughput:     throughput,
			ThroughputAvg:  stats.AverageThroughput(doneIssues),
			ThroughputBar:  visuals.ThroughputChart(throughput, project),
			LeadTimeChart:  visuals.TrendChart(leadTrend, fmt.Sprintf("Lead Time Trend - %s", project), "Avg Lead Time (Days)"),
			CycleTimeChart: visuals.TrendChart(cycleTrend, fmt.Sprintf("Cycle Time Trend - %s", project), "Avg Cycle Time (Days)"),
			ActiveIssues:   active,
			Inferred:       inferred,
		}

		path, err := report.WriteHTML(cfg.ReportsDir, data)
		if err != nil {
			return err
		}
		log.Info().Str("path", path).Msg("Report written")
		fmt.Printf("Report written to %s\n", path)

		if !reportNoOpen {
			if err := browser.OpenFile(path); err != nil {
				log.Warn().Err(err).Msg("Could not open report in browser")
			}
		}

		return nil
	},
}

func init() {
	reportCmd.Flags().IntVar(&reportMonths, "months", 6, "lookback window in months for throughput and durations")
	reportCmd.Flags().IntVar(&reportDays, "days", 30, "lookback window in days for the WIP census")
	reportCmd.Flags().BoolVar(&reportNoOpen, "no-open", false, "do not open the report in a browser")
	rootCmd.AddCommand(reportCmd)
}
