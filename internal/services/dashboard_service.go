package services

import (
	"context"
	"errors"

	"github.com/yoockh/jobmate/internal/models"
	mongorepo "github.com/yoockh/jobmate/internal/repositories/mongo"
	pgrepo "github.com/yoockh/jobmate/internal/repositories/postgres"
	"github.com/yoockh/jobmate/internal/utils"
)

type DashboardService interface {
	Stats(ctx context.Context, userID string) (*models.DashboardStats, error)
}

type dashboardService struct {
	savedJobs  pgrepo.SavedJobRepository
	generated  pgrepo.GeneratedCVRepository
	cvs        pgrepo.SavedCVRepository
	jobs       pgrepo.JobRepository
	interviews mongorepo.InterviewRepository
}

func NewDashboardService(savedJobs pgrepo.SavedJobRepository, generated pgrepo.GeneratedCVRepository, cvs pgrepo.SavedCVRepository, jobs pgrepo.JobRepository, interviews mongorepo.InterviewRepository) DashboardService {
	return &dashboardService{savedJobs: savedJobs, generated: generated, cvs: cvs, jobs: jobs, interviews: interviews}
}

func (s *dashboardService) Stats(ctx context.Context, userID string) (*models.DashboardStats, error) {
	const op = "DashboardService.Stats"

	var (
		st  models.DashboardStats
		err error
	)
	if st.SavedJobs, err = s.savedJobs.CountByUser(ctx, userID); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to count saved jobs", err)
	}
	if st.GeneratedCVs, err = s.generated.CountByUser(ctx, userID); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to count generated cvs", err)
	}
	if st.InterviewSessions, err = s.interviews.CountByUser(ctx, userID); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to count interview sessions", err)
	}

	cv, err := s.cvs.LatestUnfinished(ctx, userID)
	switch {
	case err == nil:
		st.UnfinishedCV = cv
	case !errors.Is(err, utils.ErrNotFound):
		return nil, utils.E(utils.CodeInternal, op, "failed to load unfinished cv", err)
	}

	if st.RecentJobs, err = s.jobs.Recent(ctx, 5); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load recent jobs", err)
	}
	if st.RecentJobs == nil {
		st.RecentJobs = []models.Job{}
	}
	return &st, nil
}
