package stats

import (
	"math"
	"slices"
	"time"

	"github.com/jabuddie/Custom-Jira-Kanban-Metrics/internal/jira"
)

// MonthlyThroughput counts resolved issues per resolution month. Unresolved
// issues are skipped; months with zero resolutions simply do not appear.
func MonthlyThroughput(issues []jira.Issue) []ThroughputBucket {
	months := make(map[time.Time]int)

	for _, issue := range issues {
		if issue.Resolved == nil {
			continue
		}
		months[MonthStart(*issue.Resolved)]++
	}

	var results []ThroughputBucket
	for month, count := range months {
		results = append(results, ThroughputBucket{Month: month, Count: count})
	}

	slices.SortFunc(results, func(a, b ThroughputBucket) int {
		return a.Month.Compare(b.Month)
	})

	return results
}

// AverageThroughput is the mean monthly throughput over the months that had
// any resolutions.
func AverageThroughput(issues []jira.Issue) float64 {
	buckets := MonthlyThroughput(issues)
	if len(buckets) == 0 {
		return 0
	}

	total := 0
	for _, b := range buckets {
		total += b.Count
	}
	return float64(total) / float64(len(buckets))
}

// CategorySummary splits monthly throughput by the category flag (set vs.
// empty), with the flagged share as a percentage rounded to one decimal.
func CategorySummary(issues []jira.Issue) []CategoryBucket {
	months := make(map[time.Time]*CategoryBucket)

	for _, issue := range issues {
		if issue.Resolved == nil {
			continue
		}
		month := MonthStart(*issue.Resolved)
		bucket, ok := months[month]
		if !ok {
			bucket = &CategoryBucket{Month: month}
			months[month] = bucket
		}
		bucket.Total++
		if issue.Category != "" {
			bucket.Flagged++
		} else {
			bucket.Unflagged++
		}
	}

	var results []CategoryBucket
	for _, bucket := range months {
		if bucket.Total > 0 {
			bucket.FlaggedPct = math.Round(float64(bucket.Flagged)/float64(bucket.Total)*1000) / 10
		}
		results = append(results, *bucket)
	}

	slices.SortFunc(results, func(a, b CategoryBucket) int {
		return a.Month.Compare(b.Month)
	})

	return results
}
