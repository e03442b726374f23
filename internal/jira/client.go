package jira

import (
	"time"
)

// Issue is the domain view of a Jira issue consumed by the metrics layer.
// All dynamic payload access happens in the mapper; downstream code only
// sees these resolved fields.
type Issue struct {
	Key         string
	Summary     string
	Assignee    string
	Status      string
	Category    string
	Created     time.Time
	Resolved    *time.Time
	Transitions []StatusTransition
}

// StatusTransition is a single status change from the issue changelog.
type StatusTransition struct {
	FromStatus string
	ToStatus   string
	Date       time.Time
}

// Client is the interface for fetching issue batches from Jira.
type Client interface {
	// DoneIssues returns resolved issues from the last N full months.
	DoneIssues(project string, months int) ([]Issue, error)
	// WipIssues returns issues currently in trackedStatus or that passed
	// through it within the last N days, with changelogs attached.
	WipIssues(project, trackedStatus string, days int) ([]Issue, error)
	// CycleTimeIssues returns resolved issues from the last N full months
	// with changelogs attached.
	CycleTimeIssues(project string, months int) ([]Issue, error)
}

// Config holds the authentication and connection settings for Jira Cloud.
type Config struct {
	BaseURL  string
	Email    string
	APIToken string

	// Performance Settings
	RequestDelay time.Duration
}

// NewClient creates a new Jira client based on the provided configuration.
func NewClient(cfg Config) Client {
	return newCloudClient(cfg)
}
