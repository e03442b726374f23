package stats

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// ReportWindow bounds an overlap or census query. Both ends are inclusive.
type ReportWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewReportWindow validates the ordering of the bounds.
func NewReportWindow(start, end time.Time) (ReportWindow, error) {
	if end.Before(start) {
		return ReportWindow{}, fmt.Errorf("invalid window: end %s before start %s",
			end.Format("2006-01-02"), start.Format("2006-01-02"))
	}
	return ReportWindow{Start: start, End: end}, nil
}

// MonthWindow returns the full calendar month as a window, first instant to
// last nanosecond.
func MonthWindow(year int, month time.Month, loc *time.Location) ReportWindow {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return ReportWindow{Start: start, End: end}
}

// ParseMonth parses a "2006-01" month string into a UTC month window.
func ParseMonth(s string) (ReportWindow, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return ReportWindow{}, fmt.Errorf("invalid month %q (want YYYY-MM): %w", s, err)
	}
	return MonthWindow(t.Year(), t.Month(), time.UTC), nil
}

// SnapToDayStart truncates a timestamp to the beginning of its day.
func SnapToDayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SnapToDayEnd normalizes a timestamp to the very end of its day.
func SnapToDayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, t.Location())
}

// MonthStart truncates a timestamp to the first day of its month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// WholeDays returns the floor of the duration between two instants in days.
func WholeDays(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}

// IssuesActiveInWindow returns the intervals overlapping [start, end], closed
// on both ends: a single-instant touch at either boundary counts. Results are
// ordered by interval start, ties broken by issue key so repeated calls are
// deterministic.
func IssuesActiveInWindow(intervals []WipInterval, start, end time.Time) ([]ActiveIssue, error) {
	window, err := NewReportWindow(start, end)
	if err != nil {
		return nil, err
	}

	var matched []ActiveIssue
	for _, iv := range intervals {
		if iv.Start.After(window.End) || iv.End.Before(window.Start) {
			continue
		}
		matched = append(matched, ActiveIssue{
			Key:            iv.Key,
			Summary:        iv.Summary,
			Assignee:       iv.Assignee,
			Start:          iv.Start,
			End:            iv.End,
			DaysInProgress: WholeDays(iv.Start, iv.End),
		})
	}

	slices.SortStableFunc(matched, func(a, b ActiveIssue) int {
		if c := a.Start.Compare(b.Start); c != 0 {
			return c
		}
		return strings.Compare(a.Key, b.Key)
	})

	return matched, nil
}
