package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/jabuddie/Custom-Jira-Kanban-Metrics/internal/stats"
)

var (
	headlineColor = color.New(color.FgCyan, color.Bold)
	warnColor     = color.New(color.FgYellow, color.Bold)
)

func renderTable(w io.Writer, headers []string, data [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// DailyWipTable prints the per-day WIP census.
func DailyWipTable(w io.Writer, points []stats.CensusPoint) error {
	var data [][]string
	for _, p := range points {
		data = append(data, []string{p.Date.Format("Jan 02"), strconv.Itoa(p.Count)})
	}
	return renderTable(w, []string{"Date", "WIP Count"}, data)
}

// CensusSummaryLines prints the headline WIP numbers below the daily table.
func CensusSummaryLines(w io.Writer, points []stats.CensusPoint) {
	if len(points) == 0 {
		return
	}
	summary := stats.Summarize(points)
	latest := points[len(points)-1].Date.Format("2006-01-02")

	headlineColor.Fprintf(w, "WIP Count on %s: %d\n", latest, summary.Current)
	fmt.Fprintf(w, "Max WIP: %d\n", summary.Max)
	fmt.Fprintf(w, "Min WIP: %d\n", summary.Min)
	fmt.Fprintf(w, "Avg WIP: %.1f\n", summary.Mean)
}

// ActiveIssuesTable prints the issues that overlapped a report window.
func ActiveIssuesTable(w io.Writer, rows []stats.ActiveIssue) error {
	var data [][]string
	for _, r := range rows {
		data = append(data, []string{
			r.Key,
			r.Summary,
			r.Assignee,
			r.Start.Format("2006-01-02"),
			r.End.Format("2006-01-02"),
			strconv.Itoa(r.DaysInProgress),
		})
	}
	return renderTable(w, []string{"Key", "Summary", "Assignee", "Started", "Ended", "Days"}, data)
}

// ThroughputTable prints monthly throughput counts.
func ThroughputTable(w io.Writer, buckets []stats.ThroughputBucket) error {
	var data [][]string
	for _, b := range buckets {
		data = append(data, []string{b.Month.Format("Jan 2006"), strconv.Itoa(b.Count)})
	}
	return renderTable(w, []string{"Month", "Throughput"}, data)
}

// CategoryTable prints the monthly category (KTLO) split.
func CategoryTable(w io.Writer, buckets []stats.CategoryBucket) error {
	var data [][]string
	for _, b := range buckets {
		data = append(data, []string{
			b.Month.Format("Jan 2006"),
			strconv.Itoa(b.Total),
			strconv.Itoa(b.Flagged),
			strconv.Itoa(b.Unflagged),
			fmt.Sprintf("%.1f%%", b.FlaggedPct),
		})
	}
	return renderTable(w, []string{"Month", "Total", "KTLO", "Non-KTLO", "KTLO %"}, data)
}

// AssigneeTable prints mean durations per assignee.
func AssigneeTable(w io.Writer, rows []stats.AssigneeAverage) error {
	var data [][]string
	for _, r := range rows {
		data = append(data, []string{
			r.Assignee,
			fmt.Sprintf("%.1f", r.AverageDays),
			strconv.Itoa(r.Count),
		})
	}
	return renderTable(w, []string{"Assignee", "Avg Days", "Issues"}, data)
}

// TrendTable prints a monthly duration trend.
func TrendTable(w io.Writer, buckets []stats.TrendBucket) error {
	var data [][]string
	for _, b := range buckets {
		data = append(data, []string{
			b.Month.Format("Jan 2006"),
			fmt.Sprintf("%.1f", b.AverageDays),
			strconv.Itoa(b.Count),
		})
	}
	return renderTable(w, []string{"Month", "Avg Days", "Issues"}, data)
}

// OutliersTable prints z-score flagged lead-time records.
func OutliersTable(w io.Writer, rows []stats.OutlierRecord) error {
	var data [][]string
	for _, r := range rows {
		data = append(data, []string{
			r.Key,
			r.Summary,
			r.Assignee,
			strconv.Itoa(r.Days),
			fmt.Sprintf("%.2f", r.ZScore),
		})
	}
	return renderTable(w, []string{"Key", "Summary", "Assignee", "Days", "Z-Score"}, data)
}

// InferredList prints the data-quality diagnostic for issues whose WIP start
// had to be approximated. Never silent: an empty list is reported as such.
func InferredList(w io.Writer, inferred []stats.InferredIssue) {
	if len(inferred) == 0 {
		fmt.Fprintln(w, "All WIP intervals derived from explicit transitions.")
		return
	}
	warnColor.Fprintf(w, "%d issue(s) with inferred WIP start (incomplete changelog):\n", len(inferred))
	for _, item := range inferred {
		fmt.Fprintf(w, "  %s  %s\n", item.Key, item.Summary)
	}
}
