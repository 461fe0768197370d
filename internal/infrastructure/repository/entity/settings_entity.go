package entity

import (
	"time"

	"archie-core-vtex-connector/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MongoSettingsDoc represents a shop's connector settings in MongoDB.
// Token fields hold ciphertext.
type MongoSettingsDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Shop            string             `bson:"shop"`
	AccountName     string             `bson:"accountName"`
	AppKey          string             `bson:"appKey"`
	AppToken        string             `bson:"appToken"`
	SellerID        string             `bson:"sellerId"`
	AccessToken     string             `bson:"accessToken"`
	AccessTokenHash string             `bson:"accessTokenHash,omitempty"`
	ShopifyToken    string             `bson:"shopifyToken"`
	CreatedAt       time.Time          `bson:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoSettingsDoc) ToDomain() *domain.ShopSettings {
	return &domain.ShopSettings{
		ID:           d.ID.Hex(),
		Shop:         d.Shop,
		AccountName:  d.AccountName,
		AppKey:       d.AppKey,
		AppToken:     d.AppToken,
		SellerID:     d.SellerID,
		AccessToken:  d.AccessToken,
		ShopifyToken: d.ShopifyToken,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// MongoSettingsDocFromDomain converts a domain entity to a MongoDB document
func MongoSettingsDocFromDomain(settings *domain.ShopSettings, accessTokenHash string) *MongoSettingsDoc {
	doc := &MongoSettingsDoc{
		Shop:            settings.Shop,
		AccountName:     settings.AccountName,
		AppKey:          settings.AppKey,
		AppToken:        settings.AppToken,
		SellerID:        settings.SellerID,
		AccessToken:     settings.AccessToken,
		AccessTokenHash: accessTokenHash,
		ShopifyToken:    settings.ShopifyToken,
		CreatedAt:       settings.CreatedAt,
		UpdatedAt:       settings.UpdatedAt,
	}

	if settings.ID != "" {
		if objID, err := primitive.ObjectIDFromHex(settings.ID); err == nil {
			doc.ID = objID
		}
	}

	return doc
}
