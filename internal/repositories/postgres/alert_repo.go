package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/yoockh/jobmate/internal/models"
	"github.com/yoockh/jobmate/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AlertPreferenceRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.WhatsAppAlertPreference, error)
	Upsert(ctx context.Context, p *models.WhatsAppAlertPreference) error
	TouchLastSent(ctx context.Context, userID string, at time.Time) error
	ListEnabledUserIDs(ctx context.Context) ([]string, error)
}

type alertPrefRepo struct {
	db *gorm.DB
}

func NewAlertPreferenceRepo(db *gorm.DB) AlertPreferenceRepository {
	return &alertPrefRepo{db: db}
}

func (r *alertPrefRepo) GetByUserID(ctx context.Context, userID string) (*models.WhatsAppAlertPreference, error) {
	var p models.WhatsAppAlertPreference
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p.Normalize()
	return &p, nil
}

func (r *alertPrefRepo) Upsert(ctx context.Context, p *models.WhatsAppAlertPreference) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"whatsapp_number", "is_enabled", "job_search_keywords", "location_preferences",
				"min_salary", "frequency", "updated_at",
			}),
		}).
		Create(p).Error
}

func (r *alertPrefRepo) TouchLastSent(ctx context.Context, userID string, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&models.WhatsAppAlertPreference{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{"last_sent_at": at.UTC(), "updated_at": time.Now().UTC()})
	return affected(res)
}

func (r *alertPrefRepo) ListEnabledUserIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.WhatsAppAlertPreference{}).
		Where("is_enabled = ?", true).
		Pluck("user_id", &ids).Error
	return ids, err
}
