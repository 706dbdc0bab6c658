package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/jobmate/internal/models"
	pgrepo "github.com/yoockh/jobmate/internal/repositories/postgres"
	"github.com/yoockh/jobmate/internal/utils"
)

// Publisher is the subset of the redis client used for live pushes.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

func NotificationChannel(userID string) string {
	return "user:" + userID + ":notifications"
}

type NotificationService interface {
	// Notify stores the notification and pushes it to connected clients.
	Notify(ctx context.Context, n *models.Notification) error
	List(ctx context.Context, userID string, limit int) ([]models.Notification, error)
	MarkRead(ctx context.Context, userID, id string) error
}

type notificationService struct {
	repo pgrepo.NotificationRepository
	pub  Publisher
	log  *logrus.Logger
}

func NewNotificationService(repo pgrepo.NotificationRepository, pub Publisher, log *logrus.Logger) NotificationService {
	return &notificationService{repo: repo, pub: pub, log: log}
}

func (s *notificationService) Notify(ctx context.Context, n *models.Notification) error {
	const op = "NotificationService.Notify"

	if n == nil || n.UserID == "" || n.Title == "" {
		return utils.E(utils.CodeInvalidArgument, op, "user_id and title are required", nil)
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	if err := s.repo.Insert(ctx, n); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to save notification", err)
	}

	if s.pub != nil {
		b, _ := json.Marshal(n)
		if err := s.pub.Publish(ctx, NotificationChannel(n.UserID), b).Err(); err != nil {
			s.log.WithError(err).WithField("user_id", n.UserID).Warn("notification: publish failed")
		}
	}
	return nil
}

func (s *notificationService) List(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	const op = "NotificationService.List"

	rows, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list notifications", err)
	}
	return rows, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID, id string) error {
	const op = "NotificationService.MarkRead"

	if err := s.repo.MarkRead(ctx, userID, id); err != nil {
		return mapWriteErr(op, "notification", err)
	}
	return nil
}
