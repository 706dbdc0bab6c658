package postgres

import (
	"context"
	"errors"

	"github.com/yoockh/jobmate/internal/models"
	"github.com/yoockh/jobmate/internal/utils"
	"gorm.io/gorm"
)

type SavedCVRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.SavedCV, error)
	Insert(ctx context.Context, cv *models.SavedCV) error
	MarkCompleted(ctx context.Context, userID, id string) error
	Delete(ctx context.Context, userID, id string) error
	LatestUnfinished(ctx context.Context, userID string) (*models.SavedCV, error)
}

type savedCVRepo struct {
	db *gorm.DB
}

func NewSavedCVRepo(db *gorm.DB) SavedCVRepository {
	return &savedCVRepo{db: db}
}

func (r *savedCVRepo) ListByUser(ctx context.Context, userID string) ([]models.SavedCV, error) {
	var rows []models.SavedCV
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *savedCVRepo) Insert(ctx context.Context, cv *models.SavedCV) error {
	return r.db.WithContext(ctx).Create(cv).Error
}

func (r *savedCVRepo) MarkCompleted(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).
		Model(&models.SavedCV{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("completed", true)
	return affected(res)
}

func (r *savedCVRepo) Delete(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.SavedCV{})
	return affected(res)
}

func (r *savedCVRepo) LatestUnfinished(ctx context.Context, userID string) (*models.SavedCV, error) {
	var cv models.SavedCV
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND completed = ?", userID, false).
		Order("created_at DESC").
		Take(&cv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &cv, err
}

type GeneratedCVRepository interface {
	Insert(ctx context.Context, cv *models.GeneratedCV) error
	ListByUser(ctx context.Context, userID string) ([]models.GeneratedCV, error)
	Delete(ctx context.Context, userID, id string) error
	CountByUser(ctx context.Context, userID string) (int64, error)
}

type generatedCVRepo struct {
	db *gorm.DB
}

func NewGeneratedCVRepo(db *gorm.DB) GeneratedCVRepository {
	return &generatedCVRepo{db: db}
}

func (r *generatedCVRepo) Insert(ctx context.Context, cv *models.GeneratedCV) error {
	return r.db.WithContext(ctx).Create(cv).Error
}

func (r *generatedCVRepo) ListByUser(ctx context.Context, userID string) ([]models.GeneratedCV, error) {
	var rows []models.GeneratedCV
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *generatedCVRepo) Delete(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.GeneratedCV{})
	return affected(res)
}

func (r *generatedCVRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	return countByUser(ctx, r.db, &models.GeneratedCV{}, userID)
}
