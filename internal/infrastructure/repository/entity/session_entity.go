package entity

import (
	"time"

	"archie-core-vtex-connector/internal/domain"
)

// MongoSessionDoc represents an installed shop session in MongoDB
type MongoSessionDoc struct {
	Shop        string    `bson:"shop"`
	Scope       string    `bson:"scope"`
	InstalledAt time.Time `bson:"installedAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoSessionDoc) ToDomain() *domain.Session {
	return &domain.Session{
		Shop:        d.Shop,
		Scope:       d.Scope,
		InstalledAt: d.InstalledAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
