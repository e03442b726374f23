package visuals

import (
	"fmt"
	"math"
	"strings"

	"github.com/jabuddie/Custom-Jira-Kanban-Metrics/internal/stats"
)

// Fence wraps a raw mermaid definition in a markdown code fence for terminal
// or markdown output. HTML output embeds the raw definition directly.
func Fence(chart string) string {
	if chart == "" {
		return ""
	}
	return "```mermaid\n" + chart + "\n```"
}

// DailyWipChart creates a mermaid xychart line for the daily WIP census.
func DailyWipChart(points []stats.CensusPoint, project string) string {
	if len(points) == 0 {
		return ""
	}

	var labels []string
	var values []string
	maxVal := 0

	for _, p := range points {
		labels = append(labels, fmt.Sprintf("\"%s\"", p.Date.Format("Jan 02")))
		values = append(values, fmt.Sprintf("%d", p.Count))
		if p.Count > maxVal {
			maxVal = p.Count
		}
	}

	var sb strings.Builder
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title \"Daily Work in Progress - %s\"\n", strings.ToUpper(project)))
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"WIP Count\" 0 --> %d\n", yCeiling(float64(maxVal))))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(values, ", ")))
	return sb.String()
}

// MonthlyWipChart creates a mermaid bar chart of the monthly average WIP.
func MonthlyWipChart(buckets []stats.MonthlyWip, project string) string {
	if len(buckets) == 0 {
		return ""
	}

	var labels []string
	var values []string
	maxVal := 0.0

	for _, b := range buckets {
		labels = append(labels, fmt.Sprintf("\"%s\"", b.Month.Format("Jan 2006")))
		values = append(values, fmt.Sprintf("%.1f", b.Average))
		if b.Average > maxVal {
			maxVal = b.Average
		}
	}

	var sb strings.Builder
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title \"Monthly Average WIP - %s\"\n", strings.ToUpper(project)))
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Average Daily WIP\" 0 --> %d\n", yCeiling(maxVal)))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	return sb.String()
}

// ThroughputChart creates a mermaid bar chart of monthly throughput.
func ThroughputChart(buckets []stats.ThroughputBucket, project string) string {
	if len(buckets) == 0 {
		return ""
	}

	var labels []string
	var values []string
	maxVal := 0

	for _, b := range buckets {
		labels = append(labels, fmt.Sprintf("\"%s\"", b.Month.Format("Jan 2006")))
		values = append(values, fmt.Sprintf("%d", b.Count))
		if b.Count > maxVal {
			maxVal = b.Count
		}
	}

	var sb strings.Builder
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title \"Monthly Throughput - %s\"\n", strings.ToUpper(project)))
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Issues Resolved\" 0 --> %d\n", yCeiling(float64(maxVal))))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	return sb.String()
}

// TrendChart creates a mermaid line chart for a monthly duration trend
// (lead time or cycle time).
func TrendChart(buckets []stats.TrendBucket, title, yLabel string) string {
	if len(buckets) == 0 {
		return ""
	}

	var labels []string
	var values []string
	maxVal := 0.0

	for _, b := range buckets {
		labels = append(labels, fmt.Sprintf("\"%s\"", b.Month.Format("Jan 2006")))
		values = append(values, fmt.Sprintf("%.1f", b.AverageDays))
		if b.AverageDays > maxVal {
			maxVal = b.AverageDays
		}
	}

	var sb strings.Builder
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title \"%s\"\n", title))
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"%s\" 0 --> %d\n", yLabel, yCeiling(maxVal)))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(values, ", ")))
	return sb.String()
}

// yCeiling scales the Y-axis to leave breathing room above the tallest value.
func yCeiling(maxVal float64) int {
	if maxVal <= 0 {
		return 1
	}
	return int(math.Ceil(maxVal + math.Max(1, maxVal*0.2)))
}
