package report

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/jabuddie/Custom-Jira-Kanban-Metrics/internal/stats"
)

// HTMLReport carries everything the full-report page renders. Chart fields
// hold raw mermaid definitions produced by the visuals package.
type HTMLReport struct {
	Project     string
	GeneratedAt time.Time

	WipSummary     stats.CensusSummary
	DailyWipChart  string
	MonthlyChart   string
	Throughput     []stats.ThroughputBucket
	ThroughputAvg  float64
	ThroughputBar  string
	LeadTimeChart  string
	CycleTimeChart string
	ActiveIssues   []stats.ActiveIssue
	Inferred       []stats.InferredIssue
}

const reportTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Kanban Metrics - {{.Project}}</title>
<script type="module">
  import mermaid from "https://cdn.jsdelivr.net/npm/mermaid@11/dist/mermaid.esm.min.mjs";
  mermaid.initialize({ startOnLoad: true });
</script>
<style>
  body { font-family: sans-serif; margin: 2rem auto; max-width: 70rem; color: #222; }
  h1, h2 { color: #114; }
  table { border-collapse: collapse; margin: 1rem 0; }
  th, td { border: 1px solid #bbb; padding: 0.3rem 0.7rem; text-align: left; }
  .warn { color: #a60; }
  pre.mermaid { background: none; }
</style>
</head>
<body>
<h1>Kanban Metrics &mdash; {{.Project}}</h1>
<p>Generated {{.GeneratedAt.Format "2006-01-02 15:04 MST"}}</p>

<h2>Work in Progress</h2>
<p>Current WIP: <strong>{{.WipSummary.Current}}</strong> &middot;
Max: {{.WipSummary.Max}} &middot; Min: {{.WipSummary.Min}} &middot;
Avg: {{printf "%.1f" .WipSummary.Mean}}</p>
{{if .DailyWip}}<pre class="mermaid">{{.DailyWip}}</pre>{{end}}
{{if .Monthly}}<pre class="mermaid">{{.Monthly}}</pre>{{end}}

{{if .Inferred}}
<p class="warn">{{len .Inferred}} issue(s) with inferred WIP start (incomplete changelog):</p>
<ul>{{range .Inferred}}<li>{{.Key}} &mdash; {{.Summary}}</li>{{end}}</ul>
{{end}}

{{if .ActiveIssues}}
<h2>Currently Active Issues</h2>
<table>
<tr><th>Key</th><th>Summary</th><th>Assignee</th><th>Started</th><th>Days</th></tr>
{{range .ActiveIssues}}
<tr><td>{{.Key}}</td><td>{{.Summary}}</td><td>{{.Assignee}}</td>
<td>{{.Start.Format "2006-01-02"}}</td><td>{{.DaysInProgress}}</td></tr>
{{end}}
</table>
{{end}}

<h2>Throughput</h2>
<p>Average monthly throughput: <strong>{{printf "%.1f" .ThroughputAvg}}</strong></p>
{{if .Throughbar}}<pre class="mermaid">{{.Throughbar}}</pre>{{end}}
{{if .Throughput}}
<table>
<tr><th>Month</th><th>Resolved</th></tr>
{{range .Throughput}}<tr><td>{{.Month.Format "Jan 2006"}}</td><td>{{.Count}}</td></tr>{{end}}
</table>
{{end}}

{{if .LeadTrend}}
<h2>Lead Time</h2>
<pre class="mermaid">{{.LeadTrend}}</pre>
{{end}}

{{if .CycleTrend}}
<h2>Cycle Time</h2>
<pre class="mermaid">{{.CycleTrend}}</pre>
{{end}}

</body>
</html>
`

// reportView wraps the report data so mermaid definitions bypass HTML
// escaping; entity-escaped quotes would break the chart syntax. Charts are
// built locally from our own formatting, never from user input.
type reportView struct {
	HTMLReport
	DailyWip   template.HTML
	Monthly    template.HTML
	Throughbar template.HTML
	LeadTrend  template.HTML
	CycleTrend template.HTML
}

// WriteHTML renders the report into dir and returns the written file path.
func WriteHTML(dir string, data HTMLReport) (string, error) {
	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return "", fmt.Errorf("parsing report template: %w", err)
	}

	view := reportView{
		HTMLReport: data,
		DailyWip:   template.HTML(data.DailyWipChart),
		Monthly:    template.HTML(data.MonthlyChart),
		Throughbar: template.HTML(data.ThroughputBar),
		LeadTrend:  template.HTML(data.LeadTimeChart),
		CycleTrend: template.HTML(data.CycleTimeChart),
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating reports directory: %w", err)
	}

	name := fmt.Sprintf("kanban-report-%s-%s.html", data.Project, data.GeneratedAt.Format("20060102-150405"))
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := tmpl.Execute(f, view); err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	return path, nil
}
