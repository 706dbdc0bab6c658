package config

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureMongoIndexes(dbName string) error {
	if MongoClient == nil {
		return errors.New("MongoClient is nil; call InitMongo() first")
	}
	db := MongoClient.Database(dbName)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	byUser := func(name string) []mongo.IndexModel {
		return []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "session_id", Value: 1}},
				Options: options.Index().SetName("uniq_session_id").SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: name, Value: -1}},
				Options: options.Index().SetName("by_user_" + name),
			},
		}
	}

	if _, err := db.Collection("chat_sessions").Indexes().CreateMany(ctx, byUser("updated_at")); err != nil {
		return err
	}
	_, err := db.Collection("interview_sessions").Indexes().CreateMany(ctx, byUser("created_at"))
	return err
}
