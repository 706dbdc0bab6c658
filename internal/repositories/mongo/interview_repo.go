package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/yoockh/jobmate/internal/models"
	"github.com/yoockh/jobmate/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type InterviewRepository interface {
	Create(ctx context.Context, s *models.InterviewSession) error
	GetBySessionID(ctx context.Context, userID, sessionID string) (*models.InterviewSession, error)
	ListByUser(ctx context.Context, userID string, limit int64) ([]models.InterviewSession, error)
	// SaveProgress writes answers/feedback of a session that is not yet complete.
	SaveProgress(ctx context.Context, s *models.InterviewSession) error
	CountByUser(ctx context.Context, userID string) (int64, error)
}

type interviewRepo struct {
	col *mongo.Collection
}

func NewInterviewRepo(db *mongo.Database) InterviewRepository {
	return &interviewRepo{col: db.Collection("interview_sessions")}
}

func (r *interviewRepo) Create(ctx context.Context, s *models.InterviewSession) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, s)
	return err
}

func (r *interviewRepo) GetBySessionID(ctx context.Context, userID, sessionID string) (*models.InterviewSession, error) {
	var s models.InterviewSession
	err := r.col.FindOne(ctx, bson.M{"session_id": sessionID, "user_id": userID}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	return &s, err
}

func (r *interviewRepo) ListByUser(ctx context.Context, userID string, limit int64) ([]models.InterviewSession, error) {
	if limit <= 0 {
		limit = 50
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.InterviewSession
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *interviewRepo) SaveProgress(ctx context.Context, s *models.InterviewSession) error {
	set := bson.M{
		"answers":     s.Answers,
		"feedback":    s.Feedback,
		"is_complete": s.IsComplete,
	}
	if s.CompletedAt != nil {
		set["completed_at"] = s.CompletedAt.UTC()
	}
	res, err := r.col.UpdateOne(ctx,
		bson.M{"session_id": s.SessionID, "user_id": s.UserID, "is_complete": false},
		bson.M{"$set": set},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// either gone or completed by a concurrent answer
		return utils.ErrConflict
	}
	return nil
}

func (r *interviewRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"user_id": userID})
}
