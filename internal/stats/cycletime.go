package stats

import (
	"slices"

	"github.com/jabuddie/Custom-Jira-Kanban-Metrics/internal/jira"
)

// CycleTimeRecords computes the duration from the first entry into the
// tracked status to resolution. Issues that never entered the tracked status
// or are unresolved are skipped.
func CycleTimeRecords(issues []jira.Issue, trackedStatus string) []CycleTimeRecord {
	if trackedStatus == "" {
		trackedStatus = DefaultTrackedStatus
	}

	var records []CycleTimeRecord

	for _, issue := range issues {
		if issue.Resolved == nil {
			continue
		}

		transitions := make([]jira.StatusTransition, len(issue.Transitions))
		copy(transitions, issue.Transitions)
		slices.SortStableFunc(transitions, func(a, b jira.StatusTransition) int {
			return a.Date.Compare(b.Date)
		})

		found := false
		var started = issue.Created
		for _, tr := range transitions {
			if tr.ToStatus == trackedStatus {
				started = tr.Date
				found = true
				break
			}
		}
		if !found {
			continue
		}

		records = append(records, CycleTimeRecord{
			Key:      issue.Key,
			Summary:  issue.Summary,
			Assignee: issue.Assignee,
			Started:  started,
			Resolved: *issue.Resolved,
			Days:     WholeDays(started, *issue.Resolved),
		})
	}

	return records
}

// MonthlyCycleTime averages cycle time per resolution month, with the same
// extreme-value pruning as MonthlyLeadTime.
func MonthlyCycleTime(records []CycleTimeRecord, excludeOver int) []TrendBucket {
	var samples []durationSample
	for _, r := range records {
		if excludeOver > 0 && r.Days > excludeOver {
			continue
		}
		samples = append(samples, durationSample{month: MonthStart(r.Resolved), days: r.Days})
	}
	return averageByMonth(samples)
}

// CycleTimeByAssignee averages cycle time per assignee, slowest first.
func CycleTimeByAssignee(records []CycleTimeRecord) []AssigneeAverage {
	var samples []durationSample
	for _, r := range records {
		samples = append(samples, durationSample{assignee: r.Assignee, days: r.Days})
	}
	return averageByAssignee(samples)
}
