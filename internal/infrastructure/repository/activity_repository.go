package repository

import (
	"context"
	"fmt"
	"time"

	"archie-core-vtex-connector/internal/domain"
	"archie-core-vtex-connector/internal/infrastructure/repository/entity"
	"archie-core-vtex-connector/internal/ports"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoActivityRepository implements ActivityLogRepository using MongoDB
type MongoActivityRepository struct {
	collection *mongo.Collection
}

// NewMongoActivityRepository creates a new MongoDB activity log repository
func NewMongoActivityRepository(db *mongo.Database) ports.ActivityLogRepository {
	return &MongoActivityRepository{
		collection: db.Collection(activityCollection),
	}
}

// Append inserts an activity entry, assigning its id and timestamp when unset
func (r *MongoActivityRepository) Append(ctx context.Context, entry *domain.ActivityLogEntry) error {
	doc := entity.MongoActivityDocFromDomain(entry)
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to append activity: %w", err)
	}

	entry.ID = doc.ID.Hex()
	entry.CreatedAt = doc.CreatedAt
	return nil
}
