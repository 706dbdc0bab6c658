package workers

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yoockh/jobmate/config"
	"github.com/yoockh/jobmate/internal/models"
	"github.com/yoockh/jobmate/internal/services"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type mockAlerts struct{ mock.Mock }

func (m *mockAlerts) Dispatch(ctx context.Context, userID string, manual bool) (*services.DispatchResult, error) {
	args := m.Called(ctx, userID, manual)
	res, _ := args.Get(0).(*services.DispatchResult)
	return res, args.Error(1)
}

func (m *mockAlerts) GetPreference(ctx context.Context, userID string) (*models.WhatsAppAlertPreference, error) {
	return nil, nil
}

func (m *mockAlerts) SavePreference(ctx context.Context, p *models.WhatsAppAlertPreference) (*models.WhatsAppAlertPreference, error) {
	return p, nil
}

func (m *mockAlerts) EnabledUserIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

type countingIngest struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (c *countingIngest) Ingest(ctx context.Context) (*services.IngestResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return &services.IngestResult{Success: true, Message: "ok"}, nil
}

func schedulerConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Scheduler.CheckIntervalSec = 60
	cfg.Scheduler.IngestIntervalMinutes = 360
	cfg.Scheduler.AlertIntervalMinutes = 60
	return cfg
}

func TestAlertWorker_HandleMsgDispatchesAutomatic(t *testing.T) {
	alerts := &mockAlerts{}
	alerts.On("Dispatch", mock.Anything, "u1", false).
		Return(&services.DispatchResult{Success: true, Message: "Alert sent successfully", Sent: true}, nil).Once()

	p := &AlertWorkerPool{Alerts: alerts, Logger: quietLogger()}
	p.handleMsg(context.Background(), redis.XMessage{ID: "1-0", Values: map[string]any{"user_id": "u1"}})
	p.handleMsg(context.Background(), redis.XMessage{ID: "2-0", Values: map[string]any{}})

	alerts.AssertExpectations(t)
	alerts.AssertNumberOfCalls(t, "Dispatch", 1)
}

func TestAlertWorker_DispatchErrorIsSwallowed(t *testing.T) {
	alerts := &mockAlerts{}
	alerts.On("Dispatch", mock.Anything, "u1", false).Return(nil, errors.New("boom")).Once()

	p := &AlertWorkerPool{Alerts: alerts, Logger: quietLogger()}
	assert.NotPanics(t, func() {
		p.handleMsg(context.Background(), redis.XMessage{ID: "1-0", Values: map[string]any{"user_id": "u1"}})
	})
	alerts.AssertExpectations(t)
}

func TestAlertWorker_StartRequiresDeps(t *testing.T) {
	err := (&AlertWorkerPool{}).Start(context.Background())
	require.Error(t, err)
}

func TestScheduler_InitTasks(t *testing.T) {
	s := NewScheduler(schedulerConfig(), &countingIngest{}, &mockAlerts{}, nil, quietLogger())

	st := s.Status()
	require.Contains(t, st, TaskIngestJobs)
	// no redis, nothing to fan out to
	assert.NotContains(t, st, TaskAlertFanOut)
	assert.Equal(t, 6*time.Hour, st[TaskIngestJobs].Interval)
}

func TestScheduler_RunsDueTasksAndReschedules(t *testing.T) {
	ingest := &countingIngest{}
	alerts := &mockAlerts{}
	alerts.On("EnabledUserIDs", mock.Anything).Return([]string{"u1", "u2"}, nil)

	var mu sync.Mutex
	var queued []string

	s := NewScheduler(schedulerConfig(), ingest, alerts, nil, quietLogger())
	s.enqueue = func(_ context.Context, id string) error {
		mu.Lock()
		defer mu.Unlock()
		queued = append(queued, id)
		return nil
	}
	start := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	s.tasks = map[TaskType]*TaskStatus{}
	s.initTasks(start, 6*time.Hour, time.Hour)

	ctx := context.Background()

	// only ingestion is due on the first tick
	s.checkTasks(ctx, start)
	s.wg.Wait()
	assert.Equal(t, 1, ingest.calls)
	assert.Empty(t, queued)

	st := s.Status()
	assert.Equal(t, start.Add(6*time.Hour), st[TaskIngestJobs].NextRun)
	assert.False(t, st[TaskIngestJobs].IsRunning)

	s.checkTasks(ctx, start.Add(time.Hour))
	s.wg.Wait()
	assert.Equal(t, 1, ingest.calls)
	assert.ElementsMatch(t, []string{"u1", "u2"}, queued)
	assert.Equal(t, start.Add(2*time.Hour), s.Status()[TaskAlertFanOut].NextRun)
}

func TestScheduler_FailedTaskStillReschedules(t *testing.T) {
	ingest := &countingIngest{err: errors.New("JSearch API error: 429")}
	s := NewScheduler(schedulerConfig(), ingest, nil, nil, quietLogger())
	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	s.tasks[TaskIngestJobs].NextRun = now

	s.checkTasks(context.Background(), now)
	s.wg.Wait()

	assert.Equal(t, now.Add(6*time.Hour), s.Status()[TaskIngestJobs].NextRun)
}
