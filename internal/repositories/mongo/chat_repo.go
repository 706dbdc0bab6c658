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

type ChatRepository interface {
	Create(ctx context.Context, s *models.ChatSession) error
	GetBySessionID(ctx context.Context, userID, sessionID string) (*models.ChatSession, error)
	Latest(ctx context.Context, userID string) (*models.ChatSession, error)
	// ReplaceMessages overwrites the transcript; last writer wins.
	ReplaceMessages(ctx context.Context, userID, sessionID string, msgs []models.ChatMessage) error
}

type chatRepo struct {
	col *mongo.Collection
}

func NewChatRepo(db *mongo.Database) ChatRepository {
	return &chatRepo{col: db.Collection("chat_sessions")}
}

func (r *chatRepo) Create(ctx context.Context, s *models.ChatSession) error {
	now := time.Now().UTC()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
	if s.Messages == nil {
		s.Messages = []models.ChatMessage{}
	}
	_, err := r.col.InsertOne(ctx, s)
	return err
}

func (r *chatRepo) GetBySessionID(ctx context.Context, userID, sessionID string) (*models.ChatSession, error) {
	var s models.ChatSession
	err := r.col.FindOne(ctx, bson.M{"session_id": sessionID, "user_id": userID}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	return &s, err
}

func (r *chatRepo) Latest(ctx context.Context, userID string) (*models.ChatSession, error) {
	var s models.ChatSession
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	err := r.col.FindOne(ctx, bson.M{"user_id": userID}, opts).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	return &s, err
}

func (r *chatRepo) ReplaceMessages(ctx context.Context, userID, sessionID string, msgs []models.ChatMessage) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"session_id": sessionID, "user_id": userID},
		bson.M{"$set": bson.M{
			"messages":   msgs,
			"updated_at": time.Now().UTC(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}
