package services

import (
	"context"
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

const minJobDescriptionLen = 10

type CoverLetterService interface {
	// Generate returns the cleaned letter and saves it when userID is known.
	Generate(ctx context.Context, userID string, in prompts.CoverLetterInput) (string, error)
	List(ctx context.Context, userID string) ([]models.CoverLetter, error)
	Save(ctx context.Context, cl *models.CoverLetter) error
	Delete(ctx context.Context, userID, id string) error
}

type coverLetterService struct {
	groq    llm.Provider
	letters pgrepo.CoverLetterRepository
	log     *logrus.Logger
}

func NewCoverLetterService(groq llm.Provider, letters pgrepo.CoverLetterRepository, log *logrus.Logger) CoverLetterService {
	return &coverLetterService{groq: groq, letters: letters, log: log}
}

func (s *coverLetterService) Generate(ctx context.Context, userID string, in prompts.CoverLetterInput) (string, error) {
	const op = "CoverLetterService.Generate"

	if s.groq == nil {
		return "", notConfigured(op, "GROQ")
	}
	if strings.TrimSpace(in.JobTitle) == "" {
		return "", utils.E(utils.CodeInvalidArgument, op, "jobTitle is required", nil)
	}
	if len(strings.TrimSpace(in.JobDescription)) < minJobDescriptionLen {
		return "", utils.E(utils.CodeInvalidArgument, op, "jobDescription must be at least 10 characters", nil)
	}
	if in.Tone == "" {
		in.Tone = models.ToneFormal
	}
	if !in.Tone.Valid() {
		return "", utils.E(utils.CodeInvalidArgument, op, "tone must be one of Formal, Enthusiastic, Direct", nil)
	}

	prompt, err := prompts.CoverLetter(in)
	if err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to build prompt", err)
	}

	raw, err := s.groq.Complete(ctx, prompts.CoverLetterSystem,
		[]llm.Message{{Role: llm.RoleUser, Content: prompt}},
		llm.Options{Temperature: 0.7, MaxTokens: 2000},
	)
	if err != nil {
		return "", upstream(op, s.groq, err)
	}
	letter := prompts.CleanCoverLetter(raw)

	if userID != "" {
		row := &models.CoverLetter{
			ID:             uuid.NewString(),
			UserID:         userID,
			JobTitle:       in.JobTitle,
			JobDescription: in.JobDescription,
			Tone:           in.Tone,
			GeneratedText:  letter,
			CreatedAt:      time.Now().UTC(),
		}
		if err := s.letters.Insert(ctx, row); err != nil {
			s.log.WithError(err).WithField("user_id", userID).Error("cover letter: failed to save")
		}
	}
	return letter, nil
}

func (s *coverLetterService) List(ctx context.Context, userID string) ([]models.CoverLetter, error) {
	const op = "CoverLetterService.List"

	rows, err := s.letters.ListByUser(ctx, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list cover letters", err)
	}
	return rows, nil
}

func (s *coverLetterService) Save(ctx context.Context, cl *models.CoverLetter) error {
	const op = "CoverLetterService.Save"

	if cl == nil || cl.UserID == "" || strings.TrimSpace(cl.GeneratedText) == "" {
		return utils.E(utils.CodeInvalidArgument, op, "user_id and generated_text are required", nil)
	}
	if !cl.Tone.Valid() {
		return utils.E(utils.CodeInvalidArgument, op, "tone must be one of Formal, Enthusiastic, Direct", nil)
	}
	cl.ID = uuid.NewString()
	cl.CreatedAt = time.Now().UTC()
	if err := s.letters.Insert(ctx, cl); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to save cover letter", err)
	}
	return nil
}

func (s *coverLetterService) Delete(ctx context.Context, userID, id string) error {
	return deleteOwned(ctx, "CoverLetterService.Delete", "cover letter", func(ctx context.Context) error {
		return s.letters.Delete(ctx, userID, id)
	})
}
