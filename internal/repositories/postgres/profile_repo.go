package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/pgvector/pgvector-go"
	"github.com/yoockh/jobmate/internal/models"
	"github.com/yoockh/jobmate/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	Upsert(ctx context.Context, p *models.Profile) error
	UpdateEmbedding(ctx context.Context, userID string, v pgvector.Vector) error
}

type profileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) ProfileRepository {
	return &profileRepo{db: db}
}

// profiles are keyed by the auth user id
func (r *profileRepo) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	var p models.Profile
	err := r.db.WithContext(ctx).
		Where("id = ?", userID).
		Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &p, err
}

func (r *profileRepo) Upsert(ctx context.Context, p *models.Profile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"full_name", "email", "phone_number", "location", "linkedin_url", "professional_summary",
				"skills", "interests", "experience", "education", "projects", "certifications", "languages",
				"updated_at",
			}),
		}).
		Create(p).Error
}

func (r *profileRepo) UpdateEmbedding(ctx context.Context, userID string, v pgvector.Vector) error {
	res := r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("id = ?", userID).
		Updates(map[string]any{"cv_embedding": v, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}
