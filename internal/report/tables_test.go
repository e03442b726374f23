package report

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jabuddie/Custom-Jira-Kanban-Metrics/internal/stats"
)

func TestDailyWipTable(t *testing.T) {
	points := []stats.CensusPoint{
		{Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Count: 3},
		{Date: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), Count: 5},
	}

	var buf bytes.Buffer
	if err := DailyWipTable(&buf, points); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Jan 01", "Jan 02", "3", "5"} {
		if !strings.Contains(out, want) {
			t.Errorf("Table missing %q:\n%s", want, out)
		}
	}
}

func TestInferredList(t *testing.T) {
	var buf bytes.Buffer
	InferredList(&buf, []stats.InferredIssue{{Key: "PROJ-3", Summary: "Lost history"}})
	out := buf.String()
	if !strings.Contains(out, "PROJ-3") || !strings.Contains(out, "inferred WIP start") {
		t.Errorf("Diagnostic output incomplete:\n%s", out)
	}

	buf.Reset()
	InferredList(&buf, nil)
	if !strings.Contains(buf.String(), "explicit transitions") {
		t.Errorf("Empty diagnostic should still report, got:\n%s", buf.String())
	}
}

func TestWriteHTML(t *testing.T) {
	dir := t.TempDir()
	data := HTMLReport{
		Project:       "PROJ",
		GeneratedAt:   time.Date(2025, 1, 31, 12, 0, 0, 0, time.UTC),
		WipSummary:    stats.CensusSummary{Current: 4, Max: 6, Min: 2, Mean: 3.5},
		DailyWipChart: "xychart-beta\n    title \"Daily Work in Progress - PROJ\"",
		Inferred:      []stats.InferredIssue{{Key: "PROJ-9", Summary: "Truncated"}},
	}

	path, err := WriteHTML(dir, data)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Reading report: %v", err)
	}
	for _, want := range []string{"Kanban Metrics", "PROJ", "xychart-beta", "PROJ-9"} {
		if !strings.Contains(string(raw), want) {
			t.Errorf("Report missing %q", want)
		}
	}
}
