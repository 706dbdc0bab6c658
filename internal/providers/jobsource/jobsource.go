// Package jobsource fetches postings from external job boards and normalizes them.
package jobsource

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/yoockh/jobmate/internal/models"
)

var ErrNotConfigured = errors.New("job source credentials are not configured")

// Fetcher pulls a batch of postings for ingestion into the jobs table.
type Fetcher interface {
	// Name is reported back to callers, e.g. "JSearch API".
	Name() string
	Fetch(ctx context.Context) ([]models.Job, error)
}

type SearchParams struct {
	Query      string
	Location   string
	Experience string // 0-2 | 3-5 | 6+
	Page       int
	Limit      int
}

func (p SearchParams) Offset() int { return (p.Page - 1) * p.Limit }

// Listing is a job-like search result returned to the client without being stored.
type Listing struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Company         string    `json:"company"`
	Location        string    `json:"location"`
	IsRemote        bool      `json:"is_remote"`
	PostedDate      time.Time `json:"posted_date"`
	Description     string    `json:"description"`
	Requirements    []string  `json:"requirements"`
	ExperienceLevel string    `json:"experience_level,omitempty"`
	SalaryMin       *int      `json:"salary_min,omitempty"`
	SalaryMax       *int      `json:"salary_max,omitempty"`
	ApplyLink       string    `json:"apply_link"`
}

// Page is one page of search results; Total is the board's reported match count.
type Page struct {
	Listings []Listing
	Total    int
}

// Searcher runs a paged search against a live board.
type Searcher interface {
	Search(ctx context.Context, p SearchParams) (*Page, error)
}

// StatusError is a non-2xx answer from a job board.
type StatusError struct {
	Source string
	Status int
}

func (e *StatusError) Error() string { return fmt.Sprintf("%s error: %d", e.Source, e.Status) }

func checkStatus(source string, resp *http.Response) error {
	if resp.StatusCode/100 != 2 {
		return &StatusError{Source: source, Status: resp.StatusCode}
	}
	return nil
}

func parseTime(s string, fallback time.Time) time.Time {
	if s == "" {
		return fallback
	}
	for _, layout := range []string{time.RFC3339, time.RFC3339Nano, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return fallback
}

func intPtr(f *float64) *int {
	if f == nil || *f == 0 {
		return nil
	}
	v := int(*f)
	return &v
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
