package services

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yoockh/jobmate/internal/models"
	pgrepo "github.com/yoockh/jobmate/internal/repositories/postgres"
	"github.com/yoockh/jobmate/internal/storage"
	"github.com/yoockh/jobmate/internal/utils"
)

const (
	maxCVFileSize = 10 << 20
	signedURLTTL  = 15 * time.Minute
)

type CVFileService interface {
	Upload(ctx context.Context, userID, fileName string, fileSize int, mimeType string, r io.Reader) (*models.CVFile, error)
	List(ctx context.Context, userID string) ([]models.CVFile, error)
	DownloadURL(ctx context.Context, userID, id string) (string, error)
}

type cvFileService struct {
	repo  pgrepo.CVFileRepository
	store storage.Store
}

func NewCVFileService(repo pgrepo.CVFileRepository, store storage.Store) CVFileService {
	return &cvFileService{repo: repo, store: store}
}

func (s *cvFileService) Upload(ctx context.Context, userID, fileName string, fileSize int, mimeType string, r io.Reader) (*models.CVFile, error) {
	const op = "CVFileService.Upload"

	if userID == "" || fileName == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id and file are required", nil)
	}
	if !strings.EqualFold(path.Ext(fileName), ".pdf") {
		return nil, utils.E(utils.CodeInvalidArgument, op, "only .pdf files are allowed", nil)
	}
	if fileSize <= 0 || fileSize > maxCVFileSize {
		return nil, utils.E(utils.CodeInvalidArgument, op, "file must be between 1 byte and 10MB", nil)
	}
	if s.store == nil {
		return nil, utils.E(utils.CodeConfiguration, op, "file storage is not configured", nil)
	}

	objectName := "cv/" + userID + "/" + uuid.NewString() + ".pdf"
	key, err := s.store.Upload(ctx, objectName, mimeType, r)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to upload file", err)
	}

	row := &models.CVFile{
		ID:         uuid.NewString(),
		UserID:     userID,
		FileName:   fileName,
		FilePath:   key,
		FileSize:   fileSize,
		MimeType:   mimeType,
		UploadedAt: time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, row); err != nil {
		_ = s.store.Delete(ctx, key)
		return nil, utils.E(utils.CodeInternal, op, "failed to persist cv file metadata", err)
	}
	return row, nil
}

func (s *cvFileService) List(ctx context.Context, userID string) ([]models.CVFile, error) {
	const op = "CVFileService.List"

	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list cv files", err)
	}
	return rows, nil
}

func (s *cvFileService) DownloadURL(ctx context.Context, userID, id string) (string, error) {
	const op = "CVFileService.DownloadURL"

	if s.store == nil {
		return "", utils.E(utils.CodeConfiguration, op, "file storage is not configured", nil)
	}
	f, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return "", utils.E(utils.CodeNotFound, op, "cv file not found", err)
		}
		return "", utils.E(utils.CodeInternal, op, "failed to get cv file", err)
	}
	u, err := s.store.SignedGetURL(ctx, f.FilePath, signedURLTTL)
	if err != nil {
		return "", utils.E(utils.CodeUnavailable, op, "failed to sign download url", err)
	}
	return u, nil
}
