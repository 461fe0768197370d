package repository

import (
	"context"
	"testing"

	"archie-core-vtex-connector/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoSettingsRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("get by shop", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "vtex_connector.settings", mtest.FirstBatch, bson.D{
			{Key: "shop", Value: "demo.myshopify.com"},
			{Key: "accountName", Value: "acme"},
			{Key: "sellerId", Value: "seller1"},
			{Key: "shopifyToken", Value: "cipher"},
		}))

		repo := NewMongoSettingsRepository(mt.DB)
		settings, err := repo.GetByShop(context.Background(), "demo.myshopify.com")
		require.NoError(mt, err)
		require.NotNil(mt, settings)
		assert.Equal(mt, "acme", settings.AccountName)
		assert.Equal(mt, "seller1", settings.SellerID)
		assert.Equal(mt, "cipher", settings.ShopifyToken)
	})

	mt.Run("missing shop returns nil", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "vtex_connector.settings", mtest.FirstBatch))

		repo := NewMongoSettingsRepository(mt.DB)
		settings, err := repo.GetByShop(context.Background(), "missing.myshopify.com")
		require.NoError(mt, err)
		assert.Nil(mt, settings)
	})

	mt.Run("empty token hash skips the query", func(mt *mtest.T) {
		repo := NewMongoSettingsRepository(mt.DB)
		settings, err := repo.GetByAccessTokenHash(context.Background(), "")
		require.NoError(mt, err)
		assert.Nil(mt, settings)
	})

	mt.Run("upsert", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		repo := NewMongoSettingsRepository(mt.DB)
		err := repo.Upsert(context.Background(), &domain.ShopSettings{Shop: "demo.myshopify.com", AccountName: "acme"}, "hash")
		assert.NoError(mt, err)
	})

	mt.Run("upsert failure is wrapped", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 11000, Message: "duplicate key"}))

		repo := NewMongoSettingsRepository(mt.DB)
		err := repo.Upsert(context.Background(), &domain.ShopSettings{Shop: "demo.myshopify.com"}, "hash")
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "failed to save settings")
	})
}

func TestMongoSessionRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("save", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		repo := NewMongoSessionRepository(mt.DB)
		assert.NoError(mt, repo.Save(context.Background(), &domain.Session{Shop: "demo.myshopify.com", Scope: "write_orders"}))
	})

	mt.Run("get missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "vtex_connector.sessions", mtest.FirstBatch))

		repo := NewMongoSessionRepository(mt.DB)
		session, err := repo.Get(context.Background(), "demo.myshopify.com")
		require.NoError(mt, err)
		assert.Nil(mt, session)
	})

	mt.Run("delete", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		repo := NewMongoSessionRepository(mt.DB)
		assert.NoError(mt, repo.Delete(context.Background(), "demo.myshopify.com"))
	})
}

func TestMongoActivityRepository_Append(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("assigns id and timestamp", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		repo := NewMongoActivityRepository(mt.DB)
		entry := &domain.ActivityLogEntry{Action: "/api/fulfillment/pvt/orders", Request: "POST", Type: domain.ActivitySuccess, Shop: "demo.myshopify.com"}
		require.NoError(mt, repo.Append(context.Background(), entry))
		assert.NotEmpty(mt, entry.ID)
		assert.False(mt, entry.CreatedAt.IsZero())
	})
}
