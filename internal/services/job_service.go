package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pgvector/pgvector-go"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/jobmate/internal/models"
	"github.com/yoockh/jobmate/internal/providers/jobsource"
	"github.com/yoockh/jobmate/internal/providers/llm"
	pgrepo "github.com/yoockh/jobmate/internal/repositories/postgres"
	"github.com/yoockh/jobmate/internal/utils"
)

type IngestResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Source  string `json:"source"`
	Count   int    `json:"-"`
}

type JobIngestionService interface {
	Ingest(ctx context.Context) (*IngestResult, error)
}

type jobIngestionService struct {
	source   jobsource.Fetcher
	jobs     pgrepo.JobRepository
	embedder llm.Embedder
	log      *logrus.Logger
}

// NewJobIngestionService takes a nil embedder to skip job embeddings.
func NewJobIngestionService(source jobsource.Fetcher, jobs pgrepo.JobRepository, embedder llm.Embedder, log *logrus.Logger) JobIngestionService {
	return &jobIngestionService{source: source, jobs: jobs, embedder: embedder, log: log}
}

func (s *jobIngestionService) Ingest(ctx context.Context) (*IngestResult, error) {
	const op = "JobIngestionService.Ingest"

	fetched, err := s.source.Fetch(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeUpstream, op, err.Error(), err)
	}
	if _, err := s.jobs.UpsertMany(ctx, fetched); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "Error inserting jobs: "+err.Error(), err)
	}

	if s.embedder != nil {
		if err := s.embedMissing(ctx); err != nil {
			s.log.WithError(err).Warn("ingest: job embeddings skipped")
		}
	}

	s.log.WithFields(logrus.Fields{"source": s.source.Name(), "count": len(fetched)}).Info("ingest: jobs upserted")
	return &IngestResult{
		Success: true,
		Message: fmt.Sprintf("Successfully fetched and inserted %d jobs from %s", len(fetched), s.source.Name()),
		Source:  s.source.Name(),
		Count:   len(fetched),
	}, nil
}

func jobEmbeddingText(j models.Job) string {
	return strings.Join([]string{j.Title, j.Company, strings.Join(j.Requirements, ", "), j.Description}, "\n")
}

func (s *jobIngestionService) embedMissing(ctx context.Context) error {
	pending, err := s.jobs.MissingEmbeddings(ctx, 50)
	if err != nil || len(pending) == 0 {
		return err
	}
	texts := make([]string, len(pending))
	for i, j := range pending {
		texts[i] = jobEmbeddingText(j)
	}
	vecs, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return err
	}
	for i, v := range vecs {
		if i >= len(pending) {
			break
		}
		if err := s.jobs.UpdateEmbedding(ctx, pending[i].ID, pgvector.NewVector(v)); err != nil {
			return err
		}
	}
	return nil
}

type JobService interface {
	Search(ctx context.Context, f pgrepo.JobFilter) ([]models.Job, error)
	Get(ctx context.Context, id string) (*models.Job, error)
	// Recommended ranks jobs for a user by embedding distance, or by skill overlap
	// when the profile has no embedding.
	Recommended(ctx context.Context, userID string, limit int) ([]models.ScoredJob, error)
}

type jobService struct {
	jobs     pgrepo.JobRepository
	profiles pgrepo.ProfileRepository
}

func NewJobService(jobs pgrepo.JobRepository, profiles pgrepo.ProfileRepository) JobService {
	return &jobService{jobs: jobs, profiles: profiles}
}

func (s *jobService) Search(ctx context.Context, f pgrepo.JobFilter) ([]models.Job, error) {
	const op = "JobService.Search"

	rows, err := s.jobs.Search(ctx, f)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to search jobs", err)
	}
	return rows, nil
}

func (s *jobService) Get(ctx context.Context, id string) (*models.Job, error) {
	const op = "JobService.Get"

	j, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "job not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get job", err)
	}
	return j, nil
}

func (s *jobService) Recommended(ctx context.Context, userID string, limit int) ([]models.ScoredJob, error) {
	const op = "JobService.Recommended"

	if limit <= 0 || limit > 50 {
		limit = 10
	}

	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "profile not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get profile", err)
	}

	if p.CVEmbedding != nil {
		out, err := s.jobs.Nearest(ctx, *p.CVEmbedding, limit)
		if err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to rank jobs", err)
		}
		return out, nil
	}

	candidates, err := s.jobs.Recent(ctx, 200)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load jobs", err)
	}
	return rankBySkills(p.Skills, candidates, limit), nil
}

// rankBySkills scores each job by the share of profile skills it mentions.
func rankBySkills(skills []string, jobs []models.Job, limit int) []models.ScoredJob {
	if len(skills) == 0 {
		return []models.ScoredJob{}
	}
	out := make([]models.ScoredJob, 0, len(jobs))
	for _, j := range jobs {
		hay := strings.ToLower(j.Title + " " + j.Description + " " + strings.Join(j.Requirements, " "))
		hits := 0
		for _, sk := range skills {
			if sk != "" && strings.Contains(hay, strings.ToLower(sk)) {
				hits++
			}
		}
		if hits > 0 {
			out = append(out, models.ScoredJob{Job: j, MatchScore: float64(hits) / float64(len(skills))})
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].MatchScore > out[b].MatchScore })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
