package postgres

import (
	"context"

	"github.com/yoockh/jobmate/internal/models"
	"gorm.io/gorm"
)

type CoverLetterRepository interface {
	Insert(ctx context.Context, cl *models.CoverLetter) error
	ListByUser(ctx context.Context, userID string) ([]models.CoverLetter, error)
	Delete(ctx context.Context, userID, id string) error
}

type coverLetterRepo struct {
	db *gorm.DB
}

func NewCoverLetterRepo(db *gorm.DB) CoverLetterRepository {
	return &coverLetterRepo{db: db}
}

func (r *coverLetterRepo) Insert(ctx context.Context, cl *models.CoverLetter) error {
	return r.db.WithContext(ctx).Create(cl).Error
}

func (r *coverLetterRepo) ListByUser(ctx context.Context, userID string) ([]models.CoverLetter, error) {
	var rows []models.CoverLetter
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *coverLetterRepo) Delete(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.CoverLetter{})
	return affected(res)
}
