package postgres

import (
	"context"

	"github.com/yoockh/jobmate/internal/models"
	"gorm.io/gorm"
)

type LearningRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.LearningResource, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	Insert(ctx context.Context, lr *models.LearningResource) error
	InsertMany(ctx context.Context, rows []models.LearningResource) error
	SetCompleted(ctx context.Context, userID, id string, completed bool) error
	Delete(ctx context.Context, userID, id string) error
}

type learningRepo struct {
	db *gorm.DB
}

func NewLearningRepo(db *gorm.DB) LearningRepository {
	return &learningRepo{db: db}
}

func (r *learningRepo) ListByUser(ctx context.Context, userID string) ([]models.LearningResource, error) {
	var rows []models.LearningResource
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("skill ASC").
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *learningRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	return countByUser(ctx, r.db, &models.LearningResource{}, userID)
}

func (r *learningRepo) Insert(ctx context.Context, lr *models.LearningResource) error {
	return r.db.WithContext(ctx).Create(lr).Error
}

func (r *learningRepo) InsertMany(ctx context.Context, rows []models.LearningResource) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&rows).Error
	})
}

func (r *learningRepo) SetCompleted(ctx context.Context, userID, id string, completed bool) error {
	res := r.db.WithContext(ctx).
		Model(&models.LearningResource{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("completed", completed)
	return affected(res)
}

func (r *learningRepo) Delete(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.LearningResource{})
	return affected(res)
}
