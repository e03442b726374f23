package stats

import (
	"math"
	"slices"
	"strings"
	"time"

	"github.com/jabuddie/Custom-Jira-Kanban-Metrics/internal/jira"
)

// LeadTimeRecords computes the creation-to-resolution duration for every
// resolved issue. Issues missing either endpoint are skipped.
func LeadTimeRecords(issues []jira.Issue) []LeadTimeRecord {
	var records []LeadTimeRecord

	for _, issue := range issues {
		if issue.Resolved == nil || issue.Created.IsZero() {
			continue
		}
		records = append(records, LeadTimeRecord{
			Key:      issue.Key,
			Summary:  issue.Summary,
			Assignee: issue.Assignee,
			Created:  issue.Created,
			Resolved: *issue.Resolved,
			Days:     WholeDays(issue.Created, *issue.Resolved),
		})
	}

	return records
}

// LeadTimeByAssignee averages lead time per assignee, slowest first.
func LeadTimeByAssignee(records []LeadTimeRecord) []AssigneeAverage {
	return averageByAssignee(leadDurations(records))
}

// MonthlyLeadTime averages lead time per resolution month. When excludeOver
// is positive, records above that many days are dropped first, the same
// pruning the trend charts apply to keep extreme outliers from flattening
// the series.
func MonthlyLeadTime(records []LeadTimeRecord, excludeOver int) []TrendBucket {
	var samples []durationSample
	for _, r := range records {
		if excludeOver > 0 && r.Days > excludeOver {
			continue
		}
		samples = append(samples, durationSample{month: MonthStart(r.Resolved), days: r.Days})
	}
	return averageByMonth(samples)
}

// LeadTimeOutliers flags records whose lead time deviates from the batch mean
// by at least zThreshold sample standard deviations, largest deviation first.
func LeadTimeOutliers(records []LeadTimeRecord, zThreshold float64) []OutlierRecord {
	if len(records) < 2 {
		return nil
	}

	var values []float64
	for _, r := range records {
		values = append(values, float64(r.Days))
	}
	mean := Mean(values)
	std := StdDev(values)
	if std == 0 {
		return nil
	}

	var outliers []OutlierRecord
	for _, r := range records {
		z := (float64(r.Days) - mean) / std
		if math.Abs(z) >= zThreshold {
			outliers = append(outliers, OutlierRecord{LeadTimeRecord: r, ZScore: z})
		}
	}

	slices.SortStableFunc(outliers, func(a, b OutlierRecord) int {
		switch {
		case math.Abs(a.ZScore) > math.Abs(b.ZScore):
			return -1
		case math.Abs(a.ZScore) < math.Abs(b.ZScore):
			return 1
		}
		return 0
	})

	return outliers
}

// durationSample feeds the shared by-month / by-assignee reducers used by
// both the lead-time and cycle-time groupings.
type durationSample struct {
	month    time.Time
	assignee string
	days     int
}

func leadDurations(records []LeadTimeRecord) []durationSample {
	var samples []durationSample
	for _, r := range records {
		samples = append(samples, durationSample{month: MonthStart(r.Resolved), assignee: r.Assignee, days: r.Days})
	}
	return samples
}

func averageByMonth(samples []durationSample) []TrendBucket {
	sums := make(map[time.Time]int)
	counts := make(map[time.Time]int)
	for _, s := range samples {
		sums[s.month] += s.days
		counts[s.month]++
	}

	var results []TrendBucket
	for month, sum := range sums {
		results = append(results, TrendBucket{
			Month:       month,
			AverageDays: float64(sum) / float64(counts[month]),
			Count:       counts[month],
		})
	}

	slices.SortFunc(results, func(a, b TrendBucket) int {
		return a.Month.Compare(b.Month)
	})

	return results
}

func averageByAssignee(samples []durationSample) []AssigneeAverage {
	sums := make(map[string]int)
	counts := make(map[string]int)
	for _, s := range samples {
		name := s.assignee
		if name == "" {
			name = "Unassigned"
		}
		sums[name] += s.days
		counts[name]++
	}

	var results []AssigneeAverage
	for name, sum := range sums {
		results = append(results, AssigneeAverage{
			Assignee:    name,
			AverageDays: float64(sum) / float64(counts[name]),
			Count:       counts[name],
		})
	}

	slices.SortStableFunc(results, func(a, b AssigneeAverage) int {
		switch {
		case a.AverageDays > b.AverageDays:
			return -1
		case a.AverageDays < b.AverageDays:
			return 1
		}
		return strings.Compare(a.Assignee, b.Assignee)
	})

	return results
}
