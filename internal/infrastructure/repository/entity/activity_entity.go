package entity

import (
	"time"

	"archie-core-vtex-connector/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MongoActivityDoc represents an activity log entry in MongoDB
type MongoActivityDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
	Action    string             `bson:"action"`
	Request   string             `bson:"request"`
	Response  string             `bson:"response"`
	Type      string             `bson:"type"`
	Shop      string             `bson:"shop"`
}

// MongoActivityDocFromDomain converts a domain entity to a MongoDB document
func MongoActivityDocFromDomain(entry *domain.ActivityLogEntry) *MongoActivityDoc {
	doc := &MongoActivityDoc{
		CreatedAt: entry.CreatedAt,
		Action:    entry.Action,
		Request:   entry.Request,
		Response:  entry.Response,
		Type:      string(entry.Type),
		Shop:      entry.Shop,
	}

	if entry.ID != "" {
		if objID, err := primitive.ObjectIDFromHex(entry.ID); err == nil {
			doc.ID = objID
		}
	}

	return doc
}
