package workers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/jobmate/config"
	"github.com/yoockh/jobmate/internal/services"
)

type TaskType int

const (
	TaskIngestJobs TaskType = iota
	TaskAlertFanOut
)

func (t TaskType) String() string {
	switch t {
	case TaskIngestJobs:
		return "ingest_jobs"
	case TaskAlertFanOut:
		return "alert_fan_out"
	default:
		return "unknown"
	}
}

type TaskStatus struct {
	LastRun     time.Time
	NextRun     time.Time
	IsRunning   bool
	Description string
	Interval    time.Duration
}

// Scheduler runs the periodic ingestion and alert fan-out tasks.
type Scheduler struct {
	ingest services.JobIngestionService
	alerts services.AlertService
	log    *logrus.Logger

	checkInterval time.Duration

	// enqueue hands one user id to the alert workers.
	enqueue func(ctx context.Context, userID string) error

	tasks map[TaskType]*TaskStatus
	mutex sync.Mutex
	wg    sync.WaitGroup
}

func NewScheduler(cfg *config.Config, ingest services.JobIngestionService, alerts services.AlertService, rdb *redis.Client, log *logrus.Logger) *Scheduler {
	s := &Scheduler{
		ingest:        ingest,
		alerts:        alerts,
		log:           log,
		checkInterval: secondsToDuration(cfg.Scheduler.CheckIntervalSec, 60),
		tasks:         make(map[TaskType]*TaskStatus),
	}
	if rdb != nil {
		s.enqueue = func(ctx context.Context, userID string) error {
			return rdb.XAdd(ctx, &redis.XAddArgs{
				Stream: DefaultAlertStream,
				Values: map[string]any{"user_id": userID},
			}).Err()
		}
	}
	s.initTasks(time.Now(),
		time.Duration(cfg.Scheduler.IngestIntervalMinutes)*time.Minute,
		time.Duration(cfg.Scheduler.AlertIntervalMinutes)*time.Minute)
	return s
}

func secondsToDuration(seconds, def int) time.Duration {
	if seconds <= 0 {
		seconds = def
	}
	return time.Duration(seconds) * time.Second
}

// initTasks makes ingestion due immediately; the first alert fan-out waits one interval.
func (s *Scheduler) initTasks(now time.Time, ingestEvery, alertEvery time.Duration) {
	if s.ingest != nil && ingestEvery > 0 {
		s.tasks[TaskIngestJobs] = &TaskStatus{
			NextRun:     now,
			Interval:    ingestEvery,
			Description: fmt.Sprintf("job ingestion (every %s)", ingestEvery),
		}
	}
	if s.alerts != nil && s.enqueue != nil && alertEvery > 0 {
		s.tasks[TaskAlertFanOut] = &TaskStatus{
			LastRun:     now,
			NextRun:     now.Add(alertEvery),
			Interval:    alertEvery,
			Description: fmt.Sprintf("alert fan-out (every %s)", alertEvery),
		}
	}
	s.log.WithField("task_count", len(s.tasks)).Info("scheduler tasks initialised")
}

// Run blocks until ctx is cancelled and waits for in-flight tasks.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()
	s.log.WithField("check_interval", s.checkInterval.String()).Info("scheduler started")

	for {
		select {
		case <-ctx.Done():
			s.wg.Wait()
			return
		case now := <-ticker.C:
			s.checkTasks(ctx, now)
		}
	}
}

func (s *Scheduler) checkTasks(ctx context.Context, now time.Time) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for taskType, status := range s.tasks {
		if status.IsRunning || status.NextRun.IsZero() {
			continue
		}
		if !now.Before(status.NextRun) {
			status.IsRunning = true
			s.wg.Add(1)
			go s.runTask(ctx, taskType, now)
		}
	}
}

func (s *Scheduler) runTask(ctx context.Context, taskType TaskType, now time.Time) {
	defer s.wg.Done()
	defer func() {
		s.mutex.Lock()
		defer s.mutex.Unlock()

		status := s.tasks[taskType]
		status.IsRunning = false
		status.LastRun = now
		status.NextRun = now.Add(status.Interval)
	}()

	log := s.log.WithField("task", taskType.String())
	start := time.Now()

	var err error
	switch taskType {
	case TaskIngestJobs:
		err = s.runIngest(ctx, log)
	case TaskAlertFanOut:
		err = s.runFanOut(ctx, log)
	}
	if err != nil {
		log.WithError(err).Error("scheduled task failed")
		return
	}
	log.WithField("took", time.Since(start).String()).Info("scheduled task finished")
}

func (s *Scheduler) runIngest(ctx context.Context, log *logrus.Entry) error {
	res, err := s.ingest.Ingest(ctx)
	if err != nil {
		return err
	}
	log.WithField("result", res.Message).Info("jobs ingested")
	return nil
}

func (s *Scheduler) runFanOut(ctx context.Context, log *logrus.Entry) error {
	ids, err := s.alerts.EnabledUserIDs(ctx)
	if err != nil {
		return err
	}
	queued := 0
	for _, id := range ids {
		if err := s.enqueue(ctx, id); err != nil {
			log.WithError(err).WithField("user_id", id).Warn("enqueue alert failed")
			continue
		}
		queued++
	}
	log.WithField("queued", queued).Info("alerts queued")
	return nil
}

// Status returns a snapshot of the task table.
func (s *Scheduler) Status() map[TaskType]TaskStatus {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	out := make(map[TaskType]TaskStatus, len(s.tasks))
	for k, v := range s.tasks {
		out[k] = *v
	}
	return out
}
