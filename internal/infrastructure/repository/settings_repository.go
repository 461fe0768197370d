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

// MongoSettingsRepository implements SettingsRepository using MongoDB
type MongoSettingsRepository struct {
	collection *mongo.Collection
}

// NewMongoSettingsRepository creates a new MongoDB settings repository
func NewMongoSettingsRepository(db *mongo.Database) ports.SettingsRepository {
	return &MongoSettingsRepository{
		collection: db.Collection(settingsCollection),
	}
}

// GetByShop retrieves the settings of a shop
func (r *MongoSettingsRepository) GetByShop(ctx context.Context, shop string) (*domain.ShopSettings, error) {
	return r.findOne(ctx, bson.M{"shop": shop})
}

// GetByAccessTokenHash retrieves the settings whose access token hashes to tokenHash
func (r *MongoSettingsRepository) GetByAccessTokenHash(ctx context.Context, tokenHash string) (*domain.ShopSettings, error) {
	if tokenHash == "" {
		return nil, nil
	}
	return r.findOne(ctx, bson.M{"accessTokenHash": tokenHash})
}

func (r *MongoSettingsRepository) findOne(ctx context.Context, filter bson.M) (*domain.ShopSettings, error) {
	var doc entity.MongoSettingsDoc
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	return doc.ToDomain(), nil
}

// Upsert writes the form fields of settings. The storefront token is left untouched.
func (r *MongoSettingsRepository) Upsert(ctx context.Context, settings *domain.ShopSettings, accessTokenHash string) error {
	now := time.Now()
	doc := entity.MongoSettingsDocFromDomain(settings, accessTokenHash)

	set := bson.M{
		"accountName": doc.AccountName,
		"appKey":      doc.AppKey,
		"appToken":    doc.AppToken,
		"sellerId":    doc.SellerID,
		"accessToken": doc.AccessToken,
		"updatedAt":   now,
	}
	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"createdAt": now},
	}
	// a sparse unique index skips documents without a hash
	if accessTokenHash != "" {
		set["accessTokenHash"] = accessTokenHash
	} else {
		update["$unset"] = bson.M{"accessTokenHash": ""}
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"shop": settings.Shop}, update, opts)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	return nil
}

// SetStorefrontToken stores the storefront token, creating the record if needed
func (r *MongoSettingsRepository) SetStorefrontToken(ctx context.Context, shop, encryptedToken string) error {
	now := time.Now()
	update := bson.M{
		"$set":         bson.M{"shopifyToken": encryptedToken, "updatedAt": now},
		"$setOnInsert": bson.M{"createdAt": now},
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"shop": shop}, update, opts)
	if err != nil {
		return fmt.Errorf("failed to save storefront token: %w", err)
	}

	return nil
}

// ClearStorefrontToken removes the storefront token of a shop
func (r *MongoSettingsRepository) ClearStorefrontToken(ctx context.Context, shop string) error {
	update := bson.M{"$set": bson.M{"shopifyToken": "", "updatedAt": time.Now()}}

	_, err := r.collection.UpdateOne(ctx, bson.M{"shop": shop}, update)
	if err != nil {
		return fmt.Errorf("failed to clear storefront token: %w", err)
	}

	return nil
}
