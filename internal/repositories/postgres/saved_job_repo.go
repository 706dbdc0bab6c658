package postgres

import (
	"context"

	"github.com/yoockh/jobmate/internal/models"
	"github.com/yoockh/jobmate/internal/utils"
	"gorm.io/gorm"
)

type SavedJobRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.SavedJob, error)
	Insert(ctx context.Context, s *models.SavedJob) error
	Delete(ctx context.Context, userID, jobID string) error
	CountByUser(ctx context.Context, userID string) (int64, error)
}

type savedJobRepo struct {
	db *gorm.DB
}

func NewSavedJobRepo(db *gorm.DB) SavedJobRepository {
	return &savedJobRepo{db: db}
}

func (r *savedJobRepo) ListByUser(ctx context.Context, userID string) ([]models.SavedJob, error) {
	var rows []models.SavedJob
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *savedJobRepo) Insert(ctx context.Context, s *models.SavedJob) error {
	err := r.db.WithContext(ctx).Create(s).Error
	if utils.IsUniqueViolation(err) {
		return utils.ErrConflict
	}
	return err
}

func (r *savedJobRepo) Delete(ctx context.Context, userID, jobID string) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND job_id = ?", userID, jobID).
		Delete(&models.SavedJob{})
	return affected(res)
}

func (r *savedJobRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	return countByUser(ctx, r.db, &models.SavedJob{}, userID)
}

// affected maps a zero-row write to ErrNotFound so ownership misses look like absent rows.
func affected(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func countByUser(ctx context.Context, db *gorm.DB, model any, userID string) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(model).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}
