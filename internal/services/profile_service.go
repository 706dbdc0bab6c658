package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/pgvector/pgvector-go"
	"github.com/yoockh/jobmate/internal/models"
	"github.com/yoockh/jobmate/internal/providers/llm"
	pgrepo "github.com/yoockh/jobmate/internal/repositories/postgres"
	"github.com/yoockh/jobmate/internal/utils"
)

type ProfileService interface {
	GetMe(ctx context.Context, userID string) (*models.Profile, error)
	Upsert(ctx context.Context, p *models.Profile) error
	// RefreshEmbedding recomputes the vector used for job recommendations.
	RefreshEmbedding(ctx context.Context, userID string) error
}

type profileService struct {
	profiles pgrepo.ProfileRepository
	embedder llm.Embedder
}

func NewProfileService(profiles pgrepo.ProfileRepository, embedder llm.Embedder) ProfileService {
	return &profileService{profiles: profiles, embedder: embedder}
}

func (s *profileService) GetMe(ctx context.Context, userID string) (*models.Profile, error) {
	const op = "ProfileService.GetMe"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "profile not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get profile", err)
	}
	return p, nil
}

func (s *profileService) Upsert(ctx context.Context, p *models.Profile) error {
	const op = "ProfileService.Upsert"

	if p == nil || p.ID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "profile.id is required", nil)
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	if err := s.profiles.Upsert(ctx, p); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to upsert profile", err)
	}
	return nil
}

func (s *profileService) RefreshEmbedding(ctx context.Context, userID string) error {
	const op = "ProfileService.RefreshEmbedding"

	if s.embedder == nil {
		return notConfigured(op, "OPENAI")
	}
	p, err := s.GetMe(ctx, userID)
	if err != nil {
		return err
	}
	text := strings.TrimSpace(p.ProfessionalSummary + "\n" + strings.Join(p.Skills, ", "))
	if text == "" {
		return utils.E(utils.CodeInvalidArgument, op, "profile has no summary or skills to embed", nil)
	}

	vecs, err := s.embedder.Embed(ctx, []string{text})
	if err != nil {
		return utils.E(utils.CodeUpstream, op, "embedding request failed: "+err.Error(), err)
	}
	if len(vecs) == 0 {
		return utils.E(utils.CodeUpstream, op, "embedding request returned no vectors", nil)
	}
	if err := s.profiles.UpdateEmbedding(ctx, userID, pgvector.NewVector(vecs[0])); err != nil {
		return mapWriteErr(op, "profile", err)
	}
	return nil
}
