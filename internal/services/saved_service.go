package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yoockh/jobmate/internal/models"
	pgrepo "github.com/yoockh/jobmate/internal/repositories/postgres"
	"github.com/yoockh/jobmate/internal/utils"
)

// SavedService covers the user's bookmarks and stored documents.
type SavedService interface {
	ListJobs(ctx context.Context, userID string) ([]models.SavedJob, error)
	SaveJob(ctx context.Context, userID, jobID string, matchScore *float64) (*models.SavedJob, error)
	UnsaveJob(ctx context.Context, userID, jobID string) error

	ListCVs(ctx context.Context, userID string) ([]models.SavedCV, error)
	CreateCV(ctx context.Context, cv *models.SavedCV) error
	CompleteCV(ctx context.Context, userID, id string) error
	DeleteCV(ctx context.Context, userID, id string) error

	ListGeneratedCVs(ctx context.Context, userID string) ([]models.GeneratedCV, error)
	DeleteGeneratedCV(ctx context.Context, userID, id string) error
}

type savedService struct {
	jobs      pgrepo.JobRepository
	savedJobs pgrepo.SavedJobRepository
	cvs       pgrepo.SavedCVRepository
	generated pgrepo.GeneratedCVRepository
}

func NewSavedService(jobs pgrepo.JobRepository, savedJobs pgrepo.SavedJobRepository, cvs pgrepo.SavedCVRepository, generated pgrepo.GeneratedCVRepository) SavedService {
	return &savedService{jobs: jobs, savedJobs: savedJobs, cvs: cvs, generated: generated}
}

func (s *savedService) ListJobs(ctx context.Context, userID string) ([]models.SavedJob, error) {
	const op = "SavedService.ListJobs"

	rows, err := s.savedJobs.ListByUser(ctx, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list saved jobs", err)
	}
	return rows, nil
}

func salaryText(j *models.Job) string {
	switch {
	case j.SalaryRange != "":
		return j.SalaryRange
	case j.SalaryMin != nil && j.SalaryMax != nil:
		return fmt.Sprintf("%d - %d", *j.SalaryMin, *j.SalaryMax)
	case j.SalaryMin != nil:
		return fmt.Sprintf("%d+", *j.SalaryMin)
	}
	return ""
}

func (s *savedService) SaveJob(ctx context.Context, userID, jobID string, matchScore *float64) (*models.SavedJob, error) {
	const op = "SavedService.SaveJob"

	if userID == "" || jobID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "job_id is required", nil)
	}
	if matchScore != nil && (*matchScore < 0 || *matchScore > 1) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "match_score must be between 0 and 1", nil)
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "job not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get job", err)
	}

	row := &models.SavedJob{
		ID:          uuid.NewString(),
		UserID:      userID,
		JobID:       job.ID,
		JobTitle:    job.Title,
		Company:     job.Company,
		Location:    job.Location,
		Description: job.Description,
		Salary:      salaryText(job),
		MatchScore:  matchScore,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.savedJobs.Insert(ctx, row); err != nil {
		if errors.Is(err, utils.ErrConflict) {
			return nil, utils.E(utils.CodeConflict, op, "job already saved", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to save job", err)
	}
	return row, nil
}

func (s *savedService) UnsaveJob(ctx context.Context, userID, jobID string) error {
	return deleteOwned(ctx, "SavedService.UnsaveJob", "saved job", func(ctx context.Context) error {
		return s.savedJobs.Delete(ctx, userID, jobID)
	})
}

func (s *savedService) ListCVs(ctx context.Context, userID string) ([]models.SavedCV, error) {
	const op = "SavedService.ListCVs"

	rows, err := s.cvs.ListByUser(ctx, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list saved cvs", err)
	}
	return rows, nil
}

func (s *savedService) CreateCV(ctx context.Context, cv *models.SavedCV) error {
	const op = "SavedService.CreateCV"

	if cv == nil || cv.UserID == "" || strings.TrimSpace(cv.Content) == "" {
		return utils.E(utils.CodeInvalidArgument, op, "content is required", nil)
	}
	if cv.Title == "" {
		cv.Title = cv.JobTitle + " CV"
	}
	cv.ID = uuid.NewString()
	cv.CreatedAt = time.Now().UTC()
	if err := s.cvs.Insert(ctx, cv); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to save cv", err)
	}
	return nil
}

func (s *savedService) CompleteCV(ctx context.Context, userID, id string) error {
	const op = "SavedService.CompleteCV"

	if err := s.cvs.MarkCompleted(ctx, userID, id); err != nil {
		return mapWriteErr(op, "saved cv", err)
	}
	return nil
}

func (s *savedService) DeleteCV(ctx context.Context, userID, id string) error {
	return deleteOwned(ctx, "SavedService.DeleteCV", "saved cv", func(ctx context.Context) error {
		return s.cvs.Delete(ctx, userID, id)
	})
}

func (s *savedService) ListGeneratedCVs(ctx context.Context, userID string) ([]models.GeneratedCV, error) {
	const op = "SavedService.ListGeneratedCVs"

	rows, err := s.generated.ListByUser(ctx, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list generated cvs", err)
	}
	return rows, nil
}

func (s *savedService) DeleteGeneratedCV(ctx context.Context, userID, id string) error {
	return deleteOwned(ctx, "SavedService.DeleteGeneratedCV", "generated cv", func(ctx context.Context) error {
		return s.generated.Delete(ctx, userID, id)
	})
}
