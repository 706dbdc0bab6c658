package services

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yoockh/jobmate/internal/models"
	pgrepo "github.com/yoockh/jobmate/internal/repositories/postgres"
	"github.com/yoockh/jobmate/internal/utils"
)

var defaultResources = []models.LearningResource{
	{Skill: "JavaScript", Title: "JavaScript Guide", Source: "MDN Web Docs", URL: "https://developer.mozilla.org/en-US/docs/Web/JavaScript/Guide", Duration: "10 hours", Level: models.LevelBeginner,
		Description: "A structured walkthrough of the language from grammar to closures."},
	{Skill: "React", Title: "React Quick Start", Source: "react.dev", URL: "https://react.dev/learn", Duration: "4 hours", Level: models.LevelBeginner,
		Description: "Components, props, state and hooks."},
	{Skill: "TypeScript", Title: "TypeScript Handbook", Source: "typescriptlang.org", URL: "https://www.typescriptlang.org/docs/handbook/intro.html", Duration: "8 hours", Level: models.LevelIntermediate,
		Description: "Types, generics and narrowing for everyday code."},
	{Skill: "SQL", Title: "SQL Tutorial", Source: "PostgreSQL Docs", URL: "https://www.postgresql.org/docs/current/tutorial.html", Duration: "6 hours", Level: models.LevelBeginner,
		Description: "Querying, joins and aggregates with PostgreSQL."},
	{Skill: "System Design", Title: "The System Design Primer", Source: "GitHub", URL: "https://github.com/donnemartin/system-design-primer", Duration: "20 hours", Level: models.LevelAdvanced,
		Description: "Scalability trade-offs and common interview designs."},
	{Skill: "Interviewing", Title: "The STAR Interview Method", Source: "The Muse", URL: "https://www.themuse.com/advice/star-interview-method", Duration: "30 minutes", Level: models.LevelBeginner,
		Description: "Structure behavioral answers as Situation, Task, Action, Result."},
}

type LearningService interface {
	// List returns the user's resources ordered by skill, seeding defaults on first use.
	List(ctx context.Context, userID string) ([]models.LearningResource, error)
	Create(ctx context.Context, lr *models.LearningResource) error
	SetCompleted(ctx context.Context, userID, id string, completed bool) error
	Delete(ctx context.Context, userID, id string) error
	Stats(ctx context.Context, userID string) (*models.LearningStats, error)
}

type learningService struct {
	repo pgrepo.LearningRepository
}

func NewLearningService(repo pgrepo.LearningRepository) LearningService {
	return &learningService{repo: repo}
}

func (s *learningService) seedDefaults(ctx context.Context, userID string) error {
	n, err := s.repo.CountByUser(ctx, userID)
	if err != nil || n > 0 {
		return err
	}
	now := time.Now().UTC()
	rows := make([]models.LearningResource, len(defaultResources))
	for i, d := range defaultResources {
		d.ID = uuid.NewString()
		d.UserID = userID
		d.CreatedAt = now
		rows[i] = d
	}
	return s.repo.InsertMany(ctx, rows)
}

func (s *learningService) List(ctx context.Context, userID string) ([]models.LearningResource, error) {
	const op = "LearningService.List"

	if err := s.seedDefaults(ctx, userID); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to add default learning resources", err)
	}
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list learning resources", err)
	}
	return rows, nil
}

func (s *learningService) Create(ctx context.Context, lr *models.LearningResource) error {
	const op = "LearningService.Create"

	if lr == nil || lr.UserID == "" || strings.TrimSpace(lr.Title) == "" || strings.TrimSpace(lr.Skill) == "" || strings.TrimSpace(lr.URL) == "" {
		return utils.E(utils.CodeInvalidArgument, op, "skill, title and url are required", nil)
	}
	if !lr.Level.Valid() {
		return utils.E(utils.CodeInvalidArgument, op, "level must be one of Beginner, Intermediate, Advanced", nil)
	}
	lr.ID = uuid.NewString()
	lr.Completed = false
	lr.CreatedAt = time.Now().UTC()
	if err := s.repo.Insert(ctx, lr); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to create learning resource", err)
	}
	return nil
}

func (s *learningService) SetCompleted(ctx context.Context, userID, id string, completed bool) error {
	const op = "LearningService.SetCompleted"

	if err := s.repo.SetCompleted(ctx, userID, id, completed); err != nil {
		return mapWriteErr(op, "learning resource", err)
	}
	return nil
}

func (s *learningService) Delete(ctx context.Context, userID, id string) error {
	return deleteOwned(ctx, "LearningService.Delete", "learning resource", func(ctx context.Context) error {
		return s.repo.Delete(ctx, userID, id)
	})
}

func (s *learningService) Stats(ctx context.Context, userID string) (*models.LearningStats, error) {
	rows, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return LearningStatsOf(rows), nil
}

// LearningStatsOf summarizes resources; levels with no rows are left out of ByLevel.
func LearningStatsOf(rows []models.LearningResource) *models.LearningStats {
	st := &models.LearningStats{
		Total:   len(rows),
		ByLevel: map[models.Level]int{},
		BySkill: map[string]int{},
	}
	for _, r := range rows {
		if r.Completed {
			st.Completed++
		}
		st.ByLevel[r.Level]++
		st.BySkill[r.Skill]++
	}
	if st.Total > 0 {
		st.CompletionRate = int(math.Round(float64(st.Completed) / float64(st.Total) * 100))
	}
	return st
}
