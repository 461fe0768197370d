package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names
const (
	settingsCollection = "settings"
	sessionsCollection = "sessions"
	activityCollection = "activity_logs"
)

// Connect opens a MongoDB client and verifies the deployment is reachable
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the indexes the repositories rely on
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		settingsCollection: {
			{
				Keys:    bson.D{{Key: "shop", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: "accessTokenHash", Value: 1}},
				Options: options.Index().SetUnique(true).SetSparse(true),
			},
		},
		sessionsCollection: {
			{
				Keys:    bson.D{{Key: "shop", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		activityCollection: {
			{
				Keys: bson.D{{Key: "shop", Value: 1}, {Key: "createdAt", Value: -1}},
			},
		},
	}

	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", name, err)
		}
	}
	return nil
}
