package stats

import (
	"slices"
	"time"
)

// DailyCensus computes the WIP count for every calendar day from rangeStart
// to rangeEnd inclusive. A day counts an interval when any part of the
// interval touches it, so an issue that entered and left the tracked status
// on the same day is present for that day.
//
// The scan is O(days x intervals), fine for the volumes this tool sees.
func DailyCensus(intervals []WipInterval, rangeStart, rangeEnd time.Time) ([]CensusPoint, error) {
	if _, err := NewReportWindow(rangeStart, rangeEnd); err != nil {
		return nil, err
	}

	day := SnapToDayStart(rangeStart)
	last := SnapToDayStart(rangeEnd)

	var points []CensusPoint
	for !day.After(last) {
		dayEnd := SnapToDayEnd(day)
		count := 0
		for _, iv := range intervals {
			if !iv.Start.After(dayEnd) && !iv.End.Before(day) {
				count++
			}
		}
		points = append(points, CensusPoint{Date: day, Count: count})
		day = day.AddDate(0, 0, 1)
	}

	return points, nil
}

// Summarize reduces a census series to its headline numbers. The Current
// value is the count on the last day of the range.
func Summarize(points []CensusPoint) CensusSummary {
	if len(points) == 0 {
		return CensusSummary{}
	}

	summary := CensusSummary{
		Current: points[len(points)-1].Count,
		Max:     points[0].Count,
		Min:     points[0].Count,
	}

	total := 0
	for _, p := range points {
		if p.Count > summary.Max {
			summary.Max = p.Count
		}
		if p.Count < summary.Min {
			summary.Min = p.Count
		}
		total += p.Count
	}
	summary.Mean = float64(total) / float64(len(points))

	return summary
}

// MonthlyAverage buckets a daily census by month and averages each bucket.
func MonthlyAverage(points []CensusPoint) []MonthlyWip {
	sums := make(map[time.Time]int)
	counts := make(map[time.Time]int)

	for _, p := range points {
		month := MonthStart(p.Date)
		sums[month] += p.Count
		counts[month]++
	}

	var results []MonthlyWip
	for month, sum := range sums {
		results = append(results, MonthlyWip{
			Month:   month,
			Average: float64(sum) / float64(counts[month]),
		})
	}

	slices.SortFunc(results, func(a, b MonthlyWip) int {
		return a.Month.Compare(b.Month)
	})

	return results
}
