package jira

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type cloudClient struct {
	cfg        Config
	httpClient *http.Client

	// Pacing is shared across goroutines; the report command fetches its
	// datasets concurrently.
	lastRequest   time.Time
	throttleMutex sync.Mutex

	// Session Cache
	cache      map[string][]Issue
	cacheMutex sync.RWMutex
}

const (
	searchPath = "/rest/api/3/search/jql"
	pageSize   = 100
)

func newCloudClient(cfg Config) Client {
	if cfg.RequestDelay == 0 {
		cfg.RequestDelay = 2 * time.Second
	}
	return &cloudClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 90 * time.Second,
		},
		cache: make(map[string][]Issue),
	}
}

func (c *cloudClient) throttle() {
	c.throttleMutex.Lock()
	defer c.throttleMutex.Unlock()

	elapsed := time.Since(c.lastRequest)
	if elapsed < c.cfg.RequestDelay {
		wait := c.cfg.RequestDelay - elapsed
		log.Debug().Dur("wait", wait).Msg("Throttling Jira request")
		time.Sleep(wait)
	}
	c.lastRequest = time.Now()
}

// searchPage performs one cursor-paginated request against the enhanced
// JQL search endpoint.
func (c *cloudClient) searchPage(jql string, fields []string, expand, pageToken string) (*SearchResponse, error) {
	c.throttle()

	body := searchRequest{
		JQL:           jql,
		MaxResults:    pageSize,
		Fields:        fields,
		Expand:        expand,
		NextPageToken: pageToken,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", c.cfg.BaseURL+searchPath, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.cfg.Email, c.cfg.APIToken)

	log.Debug().Str("jql", jql).Str("expand", expand).Bool("cursor", pageToken != "").Msg("Jira search request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Surface the server message to pinpoint a bad parameter or field quickly.
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("jira search returned %d: %s", resp.StatusCode, string(msg))
	}

	var page SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decoding jira search response: %w", err)
	}
	return &page, nil
}

// searchAll walks the cursor until the last page and maps all DTOs to
// domain issues.
func (c *cloudClient) searchAll(jql string, fields []string, expand string) ([]Issue, error) {
	cacheKey := fmt.Sprintf("search:%s:%s", jql, expand)

	c.cacheMutex.RLock()
	cached, ok := c.cache[cacheKey]
	c.cacheMutex.RUnlock()
	if ok {
		log.Debug().Str("key", cacheKey).Msg("Cache hit")
		return cached, nil
	}

	var issues []Issue
	token := ""
	for {
		page, err := c.searchPage(jql, fields, expand, token)
		if err != nil {
			return nil, err
		}
		for _, dto := range page.Issues {
			issues = append(issues, MapIssue(dto))
		}
		if page.IsLast || page.NextPageToken == "" {
			break
		}
		token = page.NextPageToken
	}

	c.cacheMutex.Lock()
	c.cache[cacheKey] = issues
	c.cacheMutex.Unlock()

	log.Info().Int("count", len(issues)).Msg("Fetched issues from Jira")
	return issues, nil
}

// monthsBackStart returns the first day of the month N months before now.
func monthsBackStart(now time.Time, months int) time.Time {
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return firstOfMonth.AddDate(0, -months, 0)
}

func (c *cloudClient) DoneIssues(project string, months int) ([]Issue, error) {
	start := monthsBackStart(time.Now().UTC(), months)
	jql := fmt.Sprintf(
		`project = %s AND status = Done AND issuetype != Epic AND resolved >= "%s" ORDER BY resolved DESC`,
		project, start.Format("2006-01-02"),
	)
	fields := []string{"summary", "status", "created", "updated", "resolutiondate", "assignee", "customfield_10239"}
	return c.searchAll(jql, fields, "")
}

func (c *cloudClient) WipIssues(project, trackedStatus string, days int) ([]Issue, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	jql := fmt.Sprintf(
		`project = %s AND (status = "%s" OR status WAS "%s" AFTER "%s") AND issuetype != Epic ORDER BY created DESC`,
		project, trackedStatus, trackedStatus, cutoff.Format("2006-01-02"),
	)
	fields := []string{"summary", "status", "created", "resolutiondate", "assignee"}
	return c.searchAll(jql, fields, "changelog")
}

func (c *cloudClient) CycleTimeIssues(project string, months int) ([]Issue, error) {
	start := monthsBackStart(time.Now().UTC(), months)
	jql := fmt.Sprintf(
		`project = %s AND status = Done AND issuetype != Epic AND resolved >= "%s" ORDER BY resolved DESC`,
		project, start.Format("2006-01-02"),
	)
	fields := []string{"summary", "status", "created", "resolutiondate", "assignee"}
	return c.searchAll(jql, fields, "changelog")
}
