package stats

import (
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestIssuesActiveInWindow_BoundaryTouch(t *testing.T) {
	intervals := []WipInterval{
		{Key: "PROJ-1", Start: day(5), End: day(10)},
	}

	cases := []struct {
		name       string
		start, end time.Time
		want       int
	}{
		{"touch at window start", day(10), day(15), 1},
		{"touch at window end", day(1), day(5), 1},
		{"disjoint after", day(11), day(15), 0},
		{"disjoint before", day(1), day(4), 0},
		{"contains window", day(6), day(8), 1},
		{"contained by window", day(1), day(20), 1},
	}

	for _, tc := range cases {
		matched, err := IssuesActiveInWindow(intervals, tc.start, tc.end)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if len(matched) != tc.want {
			t.Errorf("%s: got %d matches, want %d", tc.name, len(matched), tc.want)
		}
	}
}

func TestIssuesActiveInWindow_InvalidWindow(t *testing.T) {
	_, err := IssuesActiveInWindow(nil, day(10), day(5))
	if err == nil {
		t.Fatalf("Expected error for end before start")
	}
}

func TestIssuesActiveInWindow_Ordering(t *testing.T) {
	intervals := []WipInterval{
		{Key: "PROJ-B", Start: day(3), End: day(9)},
		{Key: "PROJ-C", Start: day(1), End: day(4)},
		{Key: "PROJ-A", Start: day(3), End: day(7)},
	}

	matched, err := IssuesActiveInWindow(intervals, day(1), day(31))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(matched) != 3 {
		t.Fatalf("Expected 3 matches, got %d", len(matched))
	}

	wantOrder := []string{"PROJ-C", "PROJ-A", "PROJ-B"}
	for i, want := range wantOrder {
		if matched[i].Key != want {
			t.Errorf("Position %d = %s, want %s", i, matched[i].Key, want)
		}
	}
}

func TestIssuesActiveInWindow_DaysInProgress(t *testing.T) {
	start := time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 5, 17, 30, 0, 0, time.UTC) // 3 days 8.5 hours
	intervals := []WipInterval{{Key: "PROJ-1", Start: start, End: end}}

	matched, err := IssuesActiveInWindow(intervals, day(1), day(31))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if matched[0].DaysInProgress != 3 {
		t.Errorf("DaysInProgress = %d, want floor of 3", matched[0].DaysInProgress)
	}
}

func TestIssuesActiveInWindow_MonthDisjoint(t *testing.T) {
	// Interval spanning all of February never shows up in a March query.
	intervals := []WipInterval{{
		Key:   "PROJ-1",
		Start: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 2, 28, 23, 0, 0, 0, time.UTC),
	}}

	march := MonthWindow(2025, time.March, time.UTC)
	matched, err := IssuesActiveInWindow(intervals, march.Start, march.End)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(matched) != 0 {
		t.Errorf("Expected empty result for disjoint month, got %d", len(matched))
	}
}

func TestParseMonth(t *testing.T) {
	window, err := ParseMonth("2025-02")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	wantStart := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	if !window.Start.Equal(wantStart) {
		t.Errorf("Start = %v, want %v", window.Start, wantStart)
	}
	if window.End.Month() != time.February || window.End.Day() != 28 {
		t.Errorf("End = %v, want last instant of February", window.End)
	}

	if _, err := ParseMonth("Feb 2025"); err == nil {
		t.Errorf("Expected error for malformed month string")
	}
}

func TestWholeDays(t *testing.T) {
	start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	if got := WholeDays(start, start.Add(47*time.Hour)); got != 1 {
		t.Errorf("WholeDays(47h) = %d, want 1", got)
	}
	if got := WholeDays(start, start); got != 0 {
		t.Errorf("WholeDays(zero duration) = %d, want 0", got)
	}
}
