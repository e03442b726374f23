package stats

import (
	"slices"
	"time"

	"github.com/jabuddie/Custom-Jira-Kanban-Metrics/internal/jira"
)

// DanglingPolicy decides what happens to an "entered but never left" run when
// the issue's current status is no longer the tracked one (truncated or
// inconsistent history).
type DanglingPolicy int

const (
	// DanglingDrop discards the dangling run entirely.
	DanglingDrop DanglingPolicy = iota
	// DanglingClose emits a closed interval ending at the last changelog event.
	DanglingClose
)

// DefaultTrackedStatus is the status whose entry and exit define WIP.
const DefaultTrackedStatus = "In Progress"

// DefaultFallbackDays bounds how far back an inferred interval may reach.
const DefaultFallbackDays = 30

// Options configures interval extraction.
type Options struct {
	TrackedStatus    string
	FallbackLookback time.Duration
	Dangling         DanglingPolicy
}

func (o Options) withDefaults() Options {
	if o.TrackedStatus == "" {
		o.TrackedStatus = DefaultTrackedStatus
	}
	if o.FallbackLookback <= 0 {
		o.FallbackLookback = DefaultFallbackDays * 24 * time.Hour
	}
	return o
}

// ExtractIntervals derives the WIP intervals for a single issue from its
// changelog. Returned intervals are chronological and non-overlapping.
//
// The second return is true when the only interval was inferred: the issue
// sits in the tracked status but its changelog holds no entry transition
// (typically truncated by retention), so the start is approximated as
// max(created, observationEnd-lookback).
func ExtractIntervals(issue jira.Issue, observationEnd time.Time, opts Options) ([]WipInterval, bool) {
	opts = opts.withDefaults()

	transitions := make([]jira.StatusTransition, len(issue.Transitions))
	copy(transitions, issue.Transitions)
	// Stable: equal timestamps keep their original changelog order.
	slices.SortStableFunc(transitions, func(a, b jira.StatusTransition) int {
		return a.Date.Compare(b.Date)
	})

	var intervals []WipInterval
	var entered *time.Time

	for i := range transitions {
		tr := transitions[i]
		switch {
		case tr.ToStatus == opts.TrackedStatus && entered == nil:
			t := tr.Date
			entered = &t
		case tr.FromStatus == opts.TrackedStatus && entered != nil:
			intervals = append(intervals, newInterval(issue, *entered, tr.Date, false))
			entered = nil
		}
	}

	if entered != nil {
		switch {
		case issue.Status == opts.TrackedStatus:
			// Still in the tracked status: only the end is synthesized from
			// the window boundary, the start is a real transition.
			intervals = append(intervals, newInterval(issue, *entered, observationEnd, false))
		case opts.Dangling == DanglingClose:
			last := transitions[len(transitions)-1].Date
			intervals = append(intervals, newInterval(issue, *entered, last, false))
		}
		// DanglingDrop: the run is discarded.
	}

	if len(intervals) == 0 && issue.Status == opts.TrackedStatus {
		start := observationEnd.Add(-opts.FallbackLookback)
		if issue.Created.After(start) {
			start = issue.Created
		}
		if start.After(observationEnd) {
			start = observationEnd
		}
		return []WipInterval{newInterval(issue, start, observationEnd, true)}, true
	}

	return intervals, false
}

// BuildIntervals applies extraction to every issue independently and
// concatenates the results in input order. The second return lists issues
// whose only interval was inferred; it is always produced alongside the
// primary result so reporting can flag data-quality gaps.
func BuildIntervals(issues []jira.Issue, observationEnd time.Time, opts Options) ([]WipInterval, []InferredIssue) {
	var all []WipInterval
	var inferred []InferredIssue

	for _, issue := range issues {
		intervals, fallback := ExtractIntervals(issue, observationEnd, opts)
		all = append(all, intervals...)
		if fallback {
			inferred = append(inferred, InferredIssue{Key: issue.Key, Summary: issue.Summary})
		}
	}

	return all, inferred
}

func newInterval(issue jira.Issue, start, end time.Time, inferred bool) WipInterval {
	return WipInterval{
		Key:      issue.Key,
		Summary:  issue.Summary,
		Assignee: issue.Assignee,
		Start:    start,
		End:      end,
		Inferred: inferred,
	}
}
