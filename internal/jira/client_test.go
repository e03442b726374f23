package jira

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func pageHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t.Helper()

		if r.Method != http.MethodPost || r.URL.Path != "/rest/api/3/search/jql" {
			t.Errorf("Unexpected request: %s %s", r.Method, r.URL.Path)
			http.NotFound(w, r)
			return
		}
		if _, _, ok := r.BasicAuth(); !ok {
			t.Errorf("Request missing basic auth")
		}

		var body searchRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("Decoding request body: %v", err)
		}

		// Two pages: the first returns a cursor, the second is last.
		if body.NextPageToken == "" {
			json.NewEncoder(w).Encode(SearchResponse{
				Issues: []IssueDTO{{
					Key: "PROJ-1",
					Fields: FieldsDTO{
						Summary: "First page issue",
						Created: "2025-01-05T09:30:00.000+0000",
					},
				}},
				IsLast:        false,
				NextPageToken: "cursor-2",
			})
			return
		}

		if body.NextPageToken != "cursor-2" {
			t.Errorf("Unexpected cursor %q", body.NextPageToken)
		}
		json.NewEncoder(w).Encode(SearchResponse{
			Issues: []IssueDTO{{
				Key: "PROJ-2",
				Fields: FieldsDTO{
					Summary: "Second page issue",
					Created: "2025-01-06T09:30:00.000+0000",
				},
			}},
			IsLast: true,
		})
	}
}

func TestCloudClient_CursorPagination(t *testing.T) {
	server := httptest.NewServer(pageHandler(t))
	defer server.Close()

	client := NewClient(Config{
		BaseURL:      server.URL,
		Email:        "dev@example.com",
		APIToken:     "token",
		RequestDelay: time.Millisecond,
	})

	issues, err := client.DoneIssues("PROJ", 6)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(issues) != 2 {
		t.Fatalf("Expected 2 issues across pages, got %d", len(issues))
	}
	if issues[0].Key != "PROJ-1" || issues[1].Key != "PROJ-2" {
		t.Errorf("Keys = %s, %s, want PROJ-1, PROJ-2", issues[0].Key, issues[1].Key)
	}
}

func TestCloudClient_SessionCache(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(SearchResponse{IsLast: true})
	}))
	defer server.Close()

	client := NewClient(Config{
		BaseURL:      server.URL,
		Email:        "dev@example.com",
		APIToken:     "token",
		RequestDelay: time.Millisecond,
	})

	if _, err := client.WipIssues("PROJ", "In Progress", 30); err != nil {
		t.Fatalf("First fetch: %v", err)
	}
	if _, err := client.WipIssues("PROJ", "In Progress", 30); err != nil {
		t.Fatalf("Second fetch: %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected 1 upstream call thanks to the session cache, got %d", calls)
	}
}

func TestCloudClient_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errorMessages":["Field 'bogus' does not exist"]}`, http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(Config{
		BaseURL:      server.URL,
		Email:        "dev@example.com",
		APIToken:     "token",
		RequestDelay: time.Millisecond,
	})

	if _, err := client.DoneIssues("PROJ", 6); err == nil {
		t.Fatalf("Expected error surfacing the server message")
	}
}
