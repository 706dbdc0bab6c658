package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/jobmate/internal/models"
	"github.com/yoockh/jobmate/internal/prompts"
	"github.com/yoockh/jobmate/internal/providers/llm"
	pgrepo "github.com/yoockh/jobmate/internal/repositories/postgres"
	"github.com/yoockh/jobmate/internal/utils"
)

type CVService interface {
	// Generate builds an HTML CV from the request and the caller's stored profile.
	Generate(ctx context.Context, userID string, in prompts.CVInput) (string, error)
	// GenerateFromProfile renders a CV from a client-supplied profile without persisting it.
	GenerateFromProfile(ctx context.Context, p models.Profile, jobTitle string) (string, error)
}

type cvService struct {
	groq      llm.Provider
	openai    llm.Provider
	profiles  pgrepo.ProfileRepository
	generated pgrepo.GeneratedCVRepository
	log       *logrus.Logger
}

// NewCVService accepts nil providers; the matching flow then fails with a configuration error.
func NewCVService(groq, openai llm.Provider, profiles pgrepo.ProfileRepository, generated pgrepo.GeneratedCVRepository, log *logrus.Logger) CVService {
	return &cvService{groq: groq, openai: openai, profiles: profiles, generated: generated, log: log}
}

func (s *cvService) Generate(ctx context.Context, userID string, in prompts.CVInput) (string, error) {
	const op = "CVService.Generate"

	if s.groq == nil {
		return "", utils.E(utils.CodeConfiguration, op, "GROQ API key is not configured.", nil)
	}
	if strings.TrimSpace(in.JobTitle) == "" {
		return "", utils.E(utils.CodeInvalidArgument, op, "jobTitle is required", nil)
	}

	var profile *models.Profile
	if userID != "" {
		p, err := s.profiles.GetByUserID(ctx, userID)
		switch {
		case err == nil:
			profile = p
		case errors.Is(err, utils.ErrNotFound):
		default:
			s.log.WithError(err).WithField("user_id", userID).Warn("cv: profile lookup failed, continuing without profile")
		}
	}

	prompt, err := prompts.CV(in, profile)
	if err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to build prompt", err)
	}

	content, err := s.groq.Complete(ctx, prompts.CVSystem,
		[]llm.Message{{Role: llm.RoleUser, Content: prompt}},
		llm.Options{Temperature: 0.7, MaxTokens: 4000},
	)
	if err != nil {
		return "", upstream(op, s.groq, err)
	}

	if userID != "" {
		row := &models.GeneratedCV{
			ID:            uuid.NewString(),
			UserID:        userID,
			CVContent:     content,
			JobTitle:      in.JobTitle,
			TemplateStyle: in.TemplateStyle,
			CreatedAt:     time.Now().UTC(),
		}
		if err := s.generated.Insert(ctx, row); err != nil {
			s.log.WithError(err).WithField("user_id", userID).Error("cv: failed to save generated cv")
		}
	}
	return content, nil
}

func (s *cvService) GenerateFromProfile(ctx context.Context, p models.Profile, jobTitle string) (string, error) {
	const op = "CVService.GenerateFromProfile"

	if s.openai == nil {
		return "", notConfigured(op, "OPENAI")
	}

	prompt, err := prompts.SouthAfricanCV(p, jobTitle, "")
	if err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to build prompt", err)
	}

	content, err := s.openai.Complete(ctx, prompts.SACVSystem,
		[]llm.Message{{Role: llm.RoleUser, Content: prompt}},
		llm.Options{Temperature: 0.7, MaxTokens: 2500},
	)
	if err != nil {
		return "", upstream(op, s.openai, err)
	}
	return content, nil
}
