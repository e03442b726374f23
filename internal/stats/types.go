package stats

import "time"

// WipInterval is one contiguous stay of an issue in the tracked status.
// An issue contributes multiple intervals if it entered and left the status
// more than once. Key plus Start identify an interval within one batch.
type WipInterval struct {
	Key      string    `json:"key"`
	Summary  string    `json:"summary"`
	Assignee string    `json:"assignee,omitempty"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Inferred bool      `json:"inferred"`
}

// InferredIssue identifies an issue whose WIP start had to be approximated
// because its changelog carried no transition evidence. Surfaced as a
// data-quality diagnostic alongside the interval set.
type InferredIssue struct {
	Key     string `json:"key"`
	Summary string `json:"summary"`
}

// ActiveIssue is one row of the window-overlap report.
type ActiveIssue struct {
	Key            string    `json:"key"`
	Summary        string    `json:"summary"`
	Assignee       string    `json:"assignee,omitempty"`
	Start          time.Time `json:"in_progress_start"`
	End            time.Time `json:"in_progress_end"`
	DaysInProgress int       `json:"days_in_progress"`
}

// CensusPoint is the WIP count for a single calendar day.
type CensusPoint struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// CensusSummary holds the reductions over a daily census series.
type CensusSummary struct {
	Current int     `json:"current"`
	Max     int     `json:"max"`
	Min     int     `json:"min"`
	Mean    float64 `json:"mean"`
}

// MonthlyWip is the mean of the daily census within one month.
type MonthlyWip struct {
	Month   time.Time `json:"month"`
	Average float64   `json:"average"`
}

// ThroughputBucket is the count of issues resolved in one month.
type ThroughputBucket struct {
	Month time.Time `json:"month"`
	Count int       `json:"count"`
}

// CategoryBucket splits one month's throughput by the category flag.
type CategoryBucket struct {
	Month      time.Time `json:"month"`
	Total      int       `json:"total"`
	Flagged    int       `json:"flagged"`
	Unflagged  int       `json:"unflagged"`
	FlaggedPct float64   `json:"flagged_pct"`
}

// LeadTimeRecord is the creation-to-resolution duration for one issue.
type LeadTimeRecord struct {
	Key      string    `json:"key"`
	Summary  string    `json:"summary"`
	Assignee string    `json:"assignee,omitempty"`
	Created  time.Time `json:"created"`
	Resolved time.Time `json:"resolved"`
	Days     int       `json:"days"`
}

// CycleTimeRecord is the first-tracked-entry-to-resolution duration for one issue.
type CycleTimeRecord struct {
	Key      string    `json:"key"`
	Summary  string    `json:"summary"`
	Assignee string    `json:"assignee,omitempty"`
	Started  time.Time `json:"in_progress"`
	Resolved time.Time `json:"resolved"`
	Days     int       `json:"days"`
}

// AssigneeAverage is the mean duration for one assignee.
type AssigneeAverage struct {
	Assignee    string  `json:"assignee"`
	AverageDays float64 `json:"average_days"`
	Count       int     `json:"count"`
}

// TrendBucket is the mean duration of records resolved in one month.
type TrendBucket struct {
	Month       time.Time `json:"month"`
	AverageDays float64   `json:"average_days"`
	Count       int       `json:"count"`
}

// OutlierRecord is a lead-time record flagged by its z-score.
type OutlierRecord struct {
	LeadTimeRecord
	ZScore float64 `json:"z_score"`
}
