package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"archie-core-vtex-connector/internal/domain"
	"archie-core-vtex-connector/internal/infrastructure/repository/entity"
	"archie-core-vtex-connector/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSessionRepository implements SessionRepository using MongoDB
type MongoSessionRepository struct {
	collection *mongo.Collection
}

// NewMongoSessionRepository creates a new MongoDB session repository
func NewMongoSessionRepository(db *mongo.Database) ports.SessionRepository {
	return &MongoSessionRepository{
		collection: db.Collection(sessionsCollection),
	}
}

// Save creates or refreshes the session of a shop
func (r *MongoSessionRepository) Save(ctx context.Context, session *domain.Session) error {
	now := time.Now()
	installedAt := session.InstalledAt
	if installedAt.IsZero() {
		installedAt = now
	}

	update := bson.M{
		"$set":         bson.M{"scope": session.Scope, "updatedAt": now},
		"$setOnInsert": bson.M{"installedAt": installedAt},
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"shop": session.Shop}, update, opts)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// Get retrieves the session of a shop
func (r *MongoSessionRepository) Get(ctx context.Context, shop string) (*domain.Session, error) {
	var doc entity.MongoSessionDoc
	err := r.collection.FindOne(ctx, bson.M{"shop": shop}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return doc.ToDomain(), nil
}

// Delete removes the session of a shop
func (r *MongoSessionRepository) Delete(ctx context.Context, shop string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"shop": shop})
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
