package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yoockh/jobmate/internal/models"
	"github.com/yoockh/jobmate/internal/utils"
)

const alertUser = "6f1c1b7e-8a54-4a39-9f0c-0b6a3a2f9a11"

type alertFixture struct {
	svc    *alertService
	prefs  *fakeAlertPrefs
	jobs   *fakeJobs
	sender *mockSender
	notes  *fakeNotifications
	pub    *fakePublisher
	now    time.Time
}

func newAlertFixture(t *testing.T) *alertFixture {
	t.Helper()
	f := &alertFixture{
		prefs:  newFakeAlertPrefs(),
		jobs:   &fakeJobs{},
		sender: &mockSender{},
		notes:  &fakeNotifications{},
		pub:    &fakePublisher{},
		now:    time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC),
	}
	ns := NewNotificationService(f.notes, f.pub, quietLogger())
	f.svc = NewAlertService(f.prefs, f.jobs, f.sender, ns, quietLogger()).(*alertService)
	f.svc.now = func() time.Time { return f.now }
	return f
}

func (f *alertFixture) pref(freq models.Frequency, lastSent *time.Time) {
	minSalary := 40000
	f.prefs.rows[alertUser] = &models.WhatsAppAlertPreference{
		UserID:              alertUser,
		WhatsAppNumber:      "+27825550101",
		IsEnabled:           true,
		JobSearchKeywords:   []string{"developer"},
		LocationPreferences: []string{"Cape Town"},
		MinSalary:           &minSalary,
		Frequency:           freq,
		LastSentAt:          lastSent,
	}
}

func ago(now time.Time, d time.Duration) *time.Time {
	t := now.Add(-d)
	return &t
}

func TestDispatchNotConfigured(t *testing.T) {
	f := newAlertFixture(t)

	res, err := f.svc.Dispatch(context.Background(), alertUser, false)
	assert.Nil(t, res)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, utils.HTTPStatus(err))
	assert.Equal(t, MsgAlertsNotConfigured, utils.MessageOf(err))
	assert.ErrorIs(t, err, ErrAlertsNotConfigured)
	f.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatchDisabled(t *testing.T) {
	f := newAlertFixture(t)
	f.pref(models.FrequencyDaily, nil)
	f.prefs.rows[alertUser].IsEnabled = false

	_, err := f.svc.Dispatch(context.Background(), alertUser, true)
	assert.Equal(t, MsgAlertsNotConfigured, utils.MessageOf(err))
	assert.ErrorIs(t, err, ErrAlertsNotConfigured)
}

func TestDispatchMissingUser(t *testing.T) {
	f := newAlertFixture(t)
	_, err := f.svc.Dispatch(context.Background(), "", false)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
	assert.Equal(t, "Missing user ID", utils.MessageOf(err))
}

func TestDispatchThrottle(t *testing.T) {
	tests := []struct {
		name      string
		freq      models.Frequency
		since     time.Duration
		manual    bool
		throttled bool
		message   string
	}{
		{name: "daily within 12h", freq: models.FrequencyDaily, since: 12 * time.Hour, throttled: true, message: MsgDailyAlreadySent},
		{name: "daily after 25h", freq: models.FrequencyDaily, since: 25 * time.Hour},
		{name: "weekly within 3 days", freq: models.FrequencyWeekly, since: 72 * time.Hour, throttled: true, message: MsgWeeklyAlreadySent},
		{name: "weekly after 8 days", freq: models.FrequencyWeekly, since: 8 * 24 * time.Hour},
		{name: "immediate never waits", freq: models.FrequencyImmediate, since: time.Minute},
		{name: "manual skips the window", freq: models.FrequencyDaily, since: time.Hour, manual: true},
		{name: "unknown frequency acts daily", freq: "hourly", since: 2 * time.Hour, throttled: true, message: MsgDailyAlreadySent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAlertFixture(t)
			last := ago(f.now, tt.since)
			f.pref(tt.freq, last)

			res, err := f.svc.Dispatch(context.Background(), alertUser, tt.manual)
			require.NoError(t, err)

			if tt.throttled {
				assert.False(t, res.Success)
				assert.Equal(t, tt.message, res.Message)
				assert.Empty(t, f.jobs.matchCalls)
				assert.Empty(t, f.prefs.touched)
				assert.Equal(t, *last, *f.prefs.rows[alertUser].LastSentAt)
				return
			}
			// no jobs seeded, so an unthrottled request stops at the match query
			require.Len(t, f.jobs.matchCalls, 1)
			assert.Equal(t, MsgNoMatchingJobs, res.Message)
		})
	}
}

func TestDispatchMatchCriteria(t *testing.T) {
	f := newAlertFixture(t)
	f.pref(models.FrequencyDaily, nil)

	_, err := f.svc.Dispatch(context.Background(), alertUser, false)
	require.NoError(t, err)
	require.Len(t, f.jobs.matchCalls, 1)

	c := f.jobs.matchCalls[0]
	assert.Equal(t, []string{"developer"}, c.Keywords)
	assert.Equal(t, []string{"Cape Town"}, c.Locations)
	require.NotNil(t, c.MinSalary)
	assert.Equal(t, 40000, *c.MinSalary)
}

func TestDispatchImmediateOnlyNewJobs(t *testing.T) {
	tests := []struct {
		name      string
		freq      models.Frequency
		lastSent  time.Duration
		manual    bool
		wantAfter bool
	}{
		{"immediate after a previous alert", models.FrequencyImmediate, time.Hour, false, true},
		{"immediate first alert", models.FrequencyImmediate, 0, false, false},
		{"immediate manual send", models.FrequencyImmediate, time.Hour, true, false},
		{"daily past its window", models.FrequencyDaily, 25 * time.Hour, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAlertFixture(t)
			var last *time.Time
			if tt.lastSent > 0 {
				last = ago(f.now, tt.lastSent)
			}
			f.pref(tt.freq, last)

			res, err := f.svc.Dispatch(context.Background(), alertUser, tt.manual)
			require.NoError(t, err)
			assert.Equal(t, MsgNoMatchingJobs, res.Message)
			require.Len(t, f.jobs.matchCalls, 1)

			after := f.jobs.matchCalls[0].PostedAfter
			if tt.wantAfter {
				require.NotNil(t, after)
				assert.Equal(t, *last, *after)
			} else {
				assert.Nil(t, after)
			}
		})
	}
}

func TestDispatchSends(t *testing.T) {
	f := newAlertFixture(t)
	f.pref(models.FrequencyDaily, ago(f.now, 25*time.Hour))
	f.jobs.rows = []models.Job{
		{ID: "j1", Title: "Go Developer", Company: "Acme", Location: "Cape Town", SalaryRange: "R50k - R70k"},
		{ID: "j2", Title: "Web Developer", Company: "Beta", Location: "Cape Town"},
	}

	want := "🔔 *JobMate: New Job Matches*\n\n" +
		"We found 2 new jobs matching your preferences:\n\n" +
		"🔹 Go Developer at Acme (Cape Town) - R50k - R70k\n" +
		"🔹 Web Developer at Beta (Cape Town)\n\n" +
		"View details at: jobmate.app/jobs"
	f.sender.On("Send", mock.Anything, "+27825550101", want).Return(nil).Once()

	res, err := f.svc.Dispatch(context.Background(), alertUser, false)
	require.NoError(t, err)
	f.sender.AssertExpectations(t)

	assert.True(t, res.Success)
	assert.True(t, res.Sent)
	assert.Equal(t, "WhatsApp alert sent to +27825550101", res.Message)
	require.NotNil(t, res.JobsFound)
	assert.Equal(t, 2, *res.JobsFound)

	require.Len(t, f.prefs.touched, 1)
	assert.Equal(t, f.now, f.prefs.touched[0])

	require.Len(t, f.notes.rows, 1)
	assert.Equal(t, "job_alert", f.notes.rows[0].Type)
	assert.Equal(t, []string{"user:" + alertUser + ":notifications"}, f.pub.channels)
}

func TestDispatchSendFailure(t *testing.T) {
	f := newAlertFixture(t)
	f.pref(models.FrequencyImmediate, nil)
	f.jobs.rows = []models.Job{{ID: "j1", Title: "Go Developer", Company: "Acme", Location: "Cape Town"}}
	f.sender.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("graph api down"))

	_, err := f.svc.Dispatch(context.Background(), alertUser, false)
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeUpstream))
	assert.Empty(t, f.prefs.touched)
}

func TestAlertMessageSingular(t *testing.T) {
	msg := AlertMessage([]models.Job{{Title: "SRE", Company: "Ops", Location: "Remote"}})
	assert.Contains(t, msg, "We found 1 new job matching")
}

func TestSavePreference(t *testing.T) {
	f := newAlertFixture(t)

	_, err := f.svc.SavePreference(context.Background(), &models.WhatsAppAlertPreference{UserID: alertUser, Frequency: "hourly"})
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	_, err = f.svc.SavePreference(context.Background(), &models.WhatsAppAlertPreference{UserID: alertUser, IsEnabled: true})
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	got, err := f.svc.SavePreference(context.Background(), &models.WhatsAppAlertPreference{
		UserID: alertUser, IsEnabled: true, WhatsAppNumber: "+27825550101",
	})
	require.NoError(t, err)
	assert.Equal(t, models.FrequencyDaily, got.Frequency)
	assert.NotEmpty(t, got.ID)

	ids, err := f.svc.EnabledUserIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{alertUser}, ids)
}
