package stats

import (
	"testing"
	"time"

	"github.com/jabuddie/Custom-Jira-Kanban-Metrics/internal/jira"
)

func TestExtractIntervals_EnterLeaveEnter(t *testing.T) {
	t1 := time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 1, 5, 17, 0, 0, 0, time.UTC)
	t3 := time.Date(2025, 1, 8, 10, 0, 0, 0, time.UTC)
	t4 := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	issue := jira.Issue{
		Key:     "PROJ-1",
		Summary: "Replace the widget",
		Status:  "In Progress",
		Created: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Transitions: []jira.StatusTransition{
			{FromStatus: "To Do", ToStatus: "In Progress", Date: t1},
			{FromStatus: "In Progress", ToStatus: "Blocked", Date: t2},
			{FromStatus: "Blocked", ToStatus: "In Progress", Date: t3},
		},
	}

	intervals, fallback := ExtractIntervals(issue, t4, Options{})
	if fallback {
		t.Fatalf("Expected no fallback, got one")
	}
	if len(intervals) != 2 {
		t.Fatalf("Expected 2 intervals, got %d", len(intervals))
	}

	if !intervals[0].Start.Equal(t1) || !intervals[0].End.Equal(t2) {
		t.Errorf("First interval = [%v, %v], want [%v, %v]", intervals[0].Start, intervals[0].End, t1, t2)
	}
	if !intervals[1].Start.Equal(t3) || !intervals[1].End.Equal(t4) {
		t.Errorf("Second interval = [%v, %v], want [%v, %v]", intervals[1].Start, intervals[1].End, t3, t4)
	}
	for i, iv := range intervals {
		if iv.Inferred {
			t.Errorf("Interval %d marked inferred; both starts are real transitions", i)
		}
	}
}

func TestExtractIntervals_UnorderedEvents(t *testing.T) {
	// The changelog arrives unsorted; the walk must see entries in
	// timestamp order.
	enter := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	leave := time.Date(2025, 3, 4, 8, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	issue := jira.Issue{
		Key:    "PROJ-2",
		Status: "Done",
		Transitions: []jira.StatusTransition{
			{FromStatus: "In Progress", ToStatus: "Done", Date: leave},
			{FromStatus: "To Do", ToStatus: "In Progress", Date: enter},
		},
	}

	intervals, _ := ExtractIntervals(issue, end, Options{})
	if len(intervals) != 1 {
		t.Fatalf("Expected 1 interval, got %d", len(intervals))
	}
	if !intervals[0].Start.Equal(enter) || !intervals[0].End.Equal(leave) {
		t.Errorf("Interval = [%v, %v], want [%v, %v]", intervals[0].Start, intervals[0].End, enter, leave)
	}
}

func TestExtractIntervals_FallbackLookbackBound(t *testing.T) {
	created := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	issue := jira.Issue{
		Key:     "PROJ-3",
		Summary: "Changelog lost to retention",
		Status:  "In Progress",
		Created: created,
	}

	intervals, fallback := ExtractIntervals(issue, end, Options{})
	if !fallback {
		t.Fatalf("Expected fallback interval")
	}
	if len(intervals) != 1 {
		t.Fatalf("Expected 1 interval, got %d", len(intervals))
	}

	wantStart := end.Add(-DefaultFallbackDays * 24 * time.Hour)
	if !intervals[0].Start.Equal(wantStart) {
		t.Errorf("Fallback start = %v, want lookback bound %v", intervals[0].Start, wantStart)
	}
	if !intervals[0].End.Equal(end) {
		t.Errorf("Fallback end = %v, want observation end %v", intervals[0].End, end)
	}
	if !intervals[0].Inferred {
		t.Errorf("Fallback interval not marked inferred")
	}
}

func TestExtractIntervals_FallbackCreatedWins(t *testing.T) {
	// Created inside the lookback window: the start clamps to creation.
	created := time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	issue := jira.Issue{Key: "PROJ-4", Status: "In Progress", Created: created}

	intervals, fallback := ExtractIntervals(issue, end, Options{})
	if !fallback || len(intervals) != 1 {
		t.Fatalf("Expected single fallback interval, got %d (fallback=%v)", len(intervals), fallback)
	}
	if !intervals[0].Start.Equal(created) {
		t.Errorf("Fallback start = %v, want created %v", intervals[0].Start, created)
	}
}

func TestExtractIntervals_NotTrackedNoEvidence(t *testing.T) {
	issue := jira.Issue{
		Key:     "PROJ-5",
		Status:  "Done",
		Created: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	intervals, fallback := ExtractIntervals(issue, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), Options{})
	if len(intervals) != 0 {
		t.Errorf("Expected no intervals, got %d", len(intervals))
	}
	if fallback {
		t.Errorf("Expected no fallback for an issue outside the tracked status")
	}
}

func TestExtractIntervals_DanglingDrop(t *testing.T) {
	// Entered but never left, and the record shows a different final
	// status. Default policy discards the run.
	enter := time.Date(2025, 2, 3, 9, 0, 0, 0, time.UTC)
	issue := jira.Issue{
		Key:    "PROJ-6",
		Status: "Done",
		Transitions: []jira.StatusTransition{
			{FromStatus: "To Do", ToStatus: "In Progress", Date: enter},
		},
	}

	intervals, fallback := ExtractIntervals(issue, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), Options{})
	if len(intervals) != 0 {
		t.Errorf("DanglingDrop: expected no intervals, got %d", len(intervals))
	}
	if fallback {
		t.Errorf("Dangling run must not trigger the fallback path")
	}
}

func TestExtractIntervals_DanglingClose(t *testing.T) {
	enter := time.Date(2025, 2, 3, 9, 0, 0, 0, time.UTC)
	last := time.Date(2025, 2, 7, 15, 0, 0, 0, time.UTC)
	issue := jira.Issue{
		Key:    "PROJ-7",
		Status: "Done",
		Transitions: []jira.StatusTransition{
			{FromStatus: "To Do", ToStatus: "In Progress", Date: enter},
			{FromStatus: "Review", ToStatus: "Done", Date: last},
		},
	}

	intervals, _ := ExtractIntervals(issue, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), Options{Dangling: DanglingClose})
	if len(intervals) != 1 {
		t.Fatalf("DanglingClose: expected 1 interval, got %d", len(intervals))
	}
	if !intervals[0].Start.Equal(enter) || !intervals[0].End.Equal(last) {
		t.Errorf("Interval = [%v, %v], want closed at last event [%v, %v]",
			intervals[0].Start, intervals[0].End, enter, last)
	}
}

func TestExtractIntervals_Idempotent(t *testing.T) {
	issue := jira.Issue{
		Key:     "PROJ-8",
		Status:  "In Progress",
		Created: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Transitions: []jira.StatusTransition{
			{FromStatus: "To Do", ToStatus: "In Progress", Date: time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)},
		},
	}
	end := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)

	first, fb1 := ExtractIntervals(issue, end, Options{})
	second, fb2 := ExtractIntervals(issue, end, Options{})

	if fb1 != fb2 || len(first) != len(second) {
		t.Fatalf("Repeated extraction diverged: %v/%d vs %v/%d", fb1, len(first), fb2, len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Interval %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestExtractIntervals_TrackedStatusOption(t *testing.T) {
	enter := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	leave := time.Date(2025, 4, 2, 9, 0, 0, 0, time.UTC)
	issue := jira.Issue{
		Key:    "PROJ-9",
		Status: "Done",
		Transitions: []jira.StatusTransition{
			{FromStatus: "Open", ToStatus: "In Review", Date: enter},
			{FromStatus: "In Review", ToStatus: "Done", Date: leave},
		},
	}

	intervals, _ := ExtractIntervals(issue, leave.AddDate(0, 0, 1), Options{TrackedStatus: "In Review"})
	if len(intervals) != 1 {
		t.Fatalf("Expected 1 interval for custom tracked status, got %d", len(intervals))
	}
}

func TestBuildIntervals_Diagnostics(t *testing.T) {
	end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	issues := []jira.Issue{
		{
			Key:     "PROJ-10",
			Status:  "In Progress",
			Created: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			Transitions: []jira.StatusTransition{
				{FromStatus: "To Do", ToStatus: "In Progress", Date: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)},
			},
		},
		{
			Key:     "PROJ-11",
			Summary: "No changelog survived",
			Status:  "In Progress",
			Created: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			Key:    "PROJ-12",
			Status: "Done",
		},
	}

	intervals, inferred := BuildIntervals(issues, end, Options{})

	if len(intervals) != 2 {
		t.Fatalf("Expected 2 intervals, got %d", len(intervals))
	}
	if len(inferred) != 1 {
		t.Fatalf("Expected 1 inferred diagnostic, got %d", len(inferred))
	}
	if inferred[0].Key != "PROJ-11" {
		t.Errorf("Inferred diagnostic for %s, want PROJ-11", inferred[0].Key)
	}
	// Input order preserved: the derived interval precedes the inferred one.
	if intervals[0].Key != "PROJ-10" || intervals[1].Key != "PROJ-11" {
		t.Errorf("Interval order = [%s, %s], want [PROJ-10, PROJ-11]", intervals[0].Key, intervals[1].Key)
	}
}

func TestBuildIntervals_EmptyInput(t *testing.T) {
	intervals, inferred := BuildIntervals(nil, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Options{})
	if len(intervals) != 0 || len(inferred) != 0 {
		t.Errorf("Empty input produced %d intervals and %d diagnostics", len(intervals), len(inferred))
	}
}
