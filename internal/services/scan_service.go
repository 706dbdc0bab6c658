package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/jobmate/internal/models"
	"github.com/yoockh/jobmate/internal/providers/extract"
	pgrepo "github.com/yoockh/jobmate/internal/repositories/postgres"
	"github.com/yoockh/jobmate/internal/utils"
)

type ScanService interface {
	Scan(ctx context.Context, userID, fileURL string) (*extract.Document, error)
}

type scanService struct {
	extractor extract.Extractor
	results   pgrepo.OCRResultRepository
	log       *logrus.Logger
}

func NewScanService(extractor extract.Extractor, results pgrepo.OCRResultRepository, log *logrus.Logger) ScanService {
	return &scanService{extractor: extractor, results: results, log: log}
}

func (s *scanService) Scan(ctx context.Context, userID, fileURL string) (*extract.Document, error) {
	const op = "ScanService.Scan"

	if strings.TrimSpace(fileURL) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "File URL is required", nil)
	}

	doc, err := s.extractor.Extract(ctx, fileURL)
	if err != nil {
		return nil, utils.E(utils.CodeUpstream, op, "failed to extract document: "+err.Error(), err)
	}

	if userID != "" {
		row := &models.OCRResult{
			ID:            uuid.NewString(),
			UserID:        userID,
			FileURL:       fileURL,
			ExtractedText: doc.Text,
			CreatedAt:     time.Now().UTC(),
		}
		if err := s.results.Insert(ctx, row); err != nil {
			s.log.WithError(err).WithField("user_id", userID).Error("scan: failed to store ocr result")
		}
	}
	return doc, nil
}
