package config

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoClient holds the chat and interview transcripts.
var MongoClient *mongo.Client

func InitMongo(uri string) error {
	if uri == "" {
		return errors.New("MONGO_URI is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetAppName("jobmate").
		SetServerSelectionTimeout(20*time.Second).
		SetMaxPoolSize(20).
		SetRetryWrites(true))
	if err != nil {
		return err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return err
	}

	MongoClient = client
	return nil
}

// MongoDatabase returns the transcript database; InitMongo must have succeeded.
func MongoDatabase(name string) *mongo.Database {
	return MongoClient.Database(name)
}

func CloseMongo(ctx context.Context) error {
	if MongoClient == nil {
		return nil
	}
	return MongoClient.Disconnect(ctx)
}
