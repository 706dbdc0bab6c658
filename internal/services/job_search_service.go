package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yoockh/jobmate/internal/cache"
	"github.com/yoockh/jobmate/internal/providers/jobsource"
)

const (
	SourceLinkedIn = "linkedin"
	SourceMock     = "mock"
)

type Pagination struct {
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	Total   int  `json:"total"`
	HasMore bool `json:"hasMore"`
}

type JobSearchResult struct {
	Success    bool                `json:"success"`
	Data       []jobsource.Listing `json:"data"`
	Pagination Pagination          `json:"pagination"`
	Source     string              `json:"source"`
}

type JobSearchService interface {
	// Search never fails: any LinkedIn problem falls back to generated listings.
	Search(ctx context.Context, p jobsource.SearchParams) *JobSearchResult
}

type jobSearchService struct {
	linkedin jobsource.Searcher
	cache    cache.Cache
	ttl      time.Duration
	log      *logrus.Logger
	now      func() time.Time
}

// NewJobSearchService accepts a nil cache; results are then fetched on every call.
func NewJobSearchService(linkedin jobsource.Searcher, c cache.Cache, ttl time.Duration, log *logrus.Logger) JobSearchService {
	return &jobSearchService{linkedin: linkedin, cache: c, ttl: ttl, log: log, now: time.Now}
}

func (s *jobSearchService) Search(ctx context.Context, p jobsource.SearchParams) *JobSearchResult {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	if p.Limit > 50 {
		p.Limit = 50
	}

	key := cache.Key("linkedin", p.Query, p.Location, p.Experience, p.Page, p.Limit)
	if s.cache != nil {
		var hit JobSearchResult
		if ok, err := s.cache.GetJSON(ctx, key, &hit); err == nil && ok {
			return &hit
		}
	}

	var page *jobsource.Page
	err := jobsource.ErrNotConfigured
	if s.linkedin != nil {
		page, err = s.linkedin.Search(ctx, p)
	}
	if err != nil {
		s.log.WithError(err).Info("linkedin search unavailable, using generated listings")
		return &JobSearchResult{
			Success: true,
			Data:    jobsource.Mock(p, s.now()),
			Pagination: Pagination{
				Page:    p.Page,
				Limit:   p.Limit,
				Total:   jobsource.MockTotal,
				HasMore: p.Page*p.Limit < jobsource.MockTotal,
			},
			Source: SourceMock,
		}
	}

	res := &JobSearchResult{
		Success: true,
		Data:    page.Listings,
		Pagination: Pagination{
			Page:    p.Page,
			Limit:   p.Limit,
			Total:   page.Total,
			HasMore: page.Total > p.Page*p.Limit,
		},
		Source: SourceLinkedIn,
	}
	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, res, s.ttl); err != nil {
			s.log.WithError(err).Warn("linkedin search: cache write failed")
		}
	}
	return res
}
