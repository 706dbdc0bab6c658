package postgres

import (
	"context"
	"errors"

	"github.com/yoockh/jobmate/internal/models"
	"github.com/yoockh/jobmate/internal/utils"
	"gorm.io/gorm"
)

type CVFileRepository interface {
	Insert(ctx context.Context, f *models.CVFile) error
	ListByUser(ctx context.Context, userID string) ([]models.CVFile, error)
	GetByID(ctx context.Context, userID, id string) (*models.CVFile, error)
}

type cvFileRepo struct {
	db *gorm.DB
}

func NewCVFileRepo(db *gorm.DB) CVFileRepository {
	return &cvFileRepo{db: db}
}

func (r *cvFileRepo) Insert(ctx context.Context, f *models.CVFile) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *cvFileRepo) ListByUser(ctx context.Context, userID string) ([]models.CVFile, error) {
	var rows []models.CVFile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("uploaded_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *cvFileRepo) GetByID(ctx context.Context, userID, id string) (*models.CVFile, error) {
	var row models.CVFile
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &row, err
}

type OCRResultRepository interface {
	Insert(ctx context.Context, r *models.OCRResult) error
}

type ocrRepo struct {
	db *gorm.DB
}

func NewOCRResultRepo(db *gorm.DB) OCRResultRepository {
	return &ocrRepo{db: db}
}

func (r *ocrRepo) Insert(ctx context.Context, row *models.OCRResult) error {
	return r.db.WithContext(ctx).Create(row).Error
}
