package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/jobmate/internal/models"
	"github.com/yoockh/jobmate/internal/providers/messaging"
	pgrepo "github.com/yoockh/jobmate/internal/repositories/postgres"
	"github.com/yoockh/jobmate/internal/utils"
)

const (
	MsgAlertsNotConfigured = "WhatsApp alerts not configured or disabled for this user"
	MsgDailyAlreadySent    = "Daily alert already sent today"
	MsgWeeklyAlreadySent   = "Weekly alert already sent this week"
	MsgNoMatchingJobs      = "No matching jobs found"

	alertJobLimit = 5
)

// ErrAlertsNotConfigured is wrapped by Dispatch when the user has no enabled preference.
var ErrAlertsNotConfigured = errors.New("alerts not configured")

type DispatchResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	JobsFound *int   `json:"jobsFound,omitempty"`
	// Sent is true only when a message went out.
	Sent bool `json:"-"`
}

type AlertService interface {
	// Dispatch sends the user's job-match alert. Throttle, no-match and
	// already-sent outcomes are results, not errors.
	Dispatch(ctx context.Context, userID string, manual bool) (*DispatchResult, error)
	GetPreference(ctx context.Context, userID string) (*models.WhatsAppAlertPreference, error)
	SavePreference(ctx context.Context, p *models.WhatsAppAlertPreference) (*models.WhatsAppAlertPreference, error)
	EnabledUserIDs(ctx context.Context) ([]string, error)
}

type alertService struct {
	prefs         pgrepo.AlertPreferenceRepository
	jobs          pgrepo.JobRepository
	sender        messaging.Sender
	notifications NotificationService
	log           *logrus.Logger
	now           func() time.Time
}

func NewAlertService(prefs pgrepo.AlertPreferenceRepository, jobs pgrepo.JobRepository, sender messaging.Sender, notifications NotificationService, log *logrus.Logger) AlertService {
	return &alertService{prefs: prefs, jobs: jobs, sender: sender, notifications: notifications, log: log, now: time.Now}
}

func (s *alertService) Dispatch(ctx context.Context, userID string, manual bool) (*DispatchResult, error) {
	const op = "AlertService.Dispatch"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "Missing user ID", nil)
	}

	pref, err := s.prefs.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeInternal, op, "Error fetching alert preferences: "+err.Error(), err)
	}
	if pref == nil || !pref.IsEnabled {
		return nil, utils.E(utils.CodeInvalidArgument, op, MsgAlertsNotConfigured, ErrAlertsNotConfigured)
	}

	now := s.now().UTC()
	if !manual && throttled(pref, now) {
		msg := MsgDailyAlreadySent
		if pref.Frequency == models.FrequencyWeekly {
			msg = MsgWeeklyAlreadySent
		}
		return &DispatchResult{Success: false, Message: msg}, nil
	}

	criteria := pgrepo.AlertCriteria{
		Keywords:  pref.JobSearchKeywords,
		Locations: pref.LocationPreferences,
		MinSalary: pref.MinSalary,
	}
	// immediate alerts have no throttle window; only jobs newer than the last alert count
	if !manual && pref.Frequency.Interval() == 0 && pref.LastSentAt != nil {
		criteria.PostedAfter = pref.LastSentAt
	}
	jobs, err := s.jobs.Match(ctx, criteria, alertJobLimit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "Error fetching jobs: "+err.Error(), err)
	}
	if len(jobs) == 0 {
		return &DispatchResult{Success: false, Message: MsgNoMatchingJobs}, nil
	}

	if err := s.sender.Send(ctx, pref.WhatsAppNumber, AlertMessage(jobs)); err != nil {
		return nil, utils.E(utils.CodeUpstream, op, "failed to send WhatsApp message: "+err.Error(), err)
	}

	if err := s.prefs.TouchLastSent(ctx, userID, now); err != nil {
		s.log.WithError(err).WithField("user_id", userID).Error("alerts: failed to update last_sent_at")
	}
	s.notify(ctx, userID, len(jobs))

	n := len(jobs)
	return &DispatchResult{
		Success:   true,
		Message:   "WhatsApp alert sent to " + pref.WhatsAppNumber,
		JobsFound: &n,
		Sent:      true,
	}, nil
}

// throttled reports whether a non-manual alert is still inside the frequency window.
func throttled(p *models.WhatsAppAlertPreference, now time.Time) bool {
	if p.LastSentAt == nil {
		return false
	}
	iv := p.Frequency.Interval()
	return iv > 0 && now.Sub(*p.LastSentAt) < iv
}

// AlertMessage renders the WhatsApp body for a batch of matched jobs.
func AlertMessage(jobs []models.Job) string {
	lines := make([]string, len(jobs))
	for i, j := range jobs {
		line := fmt.Sprintf("🔹 %s at %s (%s)", j.Title, j.Company, j.Location)
		if j.SalaryRange != "" {
			line += " - " + j.SalaryRange
		}
		lines[i] = line
	}
	plural := ""
	if len(jobs) > 1 {
		plural = "s"
	}
	return "🔔 *JobMate: New Job Matches*\n\n" +
		fmt.Sprintf("We found %d new job%s matching your preferences:\n\n", len(jobs), plural) +
		strings.Join(lines, "\n") + "\n\n" +
		"View details at: jobmate.app/jobs"
}

func (s *alertService) notify(ctx context.Context, userID string, found int) {
	if s.notifications == nil {
		return
	}
	err := s.notifications.Notify(ctx, &models.Notification{
		UserID:  userID,
		Title:   "New job matches",
		Content: fmt.Sprintf("%d new job(s) match your alert preferences.", found),
		Type:    "job_alert",
		Link:    "/jobs",
	})
	if err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("alerts: notification not stored")
	}
}

func (s *alertService) GetPreference(ctx context.Context, userID string) (*models.WhatsAppAlertPreference, error) {
	const op = "AlertService.GetPreference"

	p, err := s.prefs.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "alert preferences not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get alert preferences", err)
	}
	return p, nil
}

func (s *alertService) SavePreference(ctx context.Context, p *models.WhatsAppAlertPreference) (*models.WhatsAppAlertPreference, error) {
	const op = "AlertService.SavePreference"

	if p == nil || p.UserID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	if p.Frequency == "" {
		p.Frequency = models.FrequencyDaily
	}
	if !p.Frequency.Valid() {
		return nil, utils.E(utils.CodeInvalidArgument, op, "frequency must be one of immediate, daily, weekly", nil)
	}
	if p.IsEnabled && strings.TrimSpace(p.WhatsAppNumber) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "whatsapp_number is required when alerts are enabled", nil)
	}

	now := s.now().UTC()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	if err := s.prefs.Upsert(ctx, p); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save alert preferences", err)
	}
	return s.GetPreference(ctx, p.UserID)
}

func (s *alertService) EnabledUserIDs(ctx context.Context) ([]string, error) {
	const op = "AlertService.EnabledUserIDs"

	ids, err := s.prefs.ListEnabledUserIDs(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list alert subscribers", err)
	}
	return ids, nil
}
