package ports

import (
	"context"
	"time"

	"archie-core-vtex-connector/internal/domain"
)

// SettingsRepository defines the interface for per-shop credential persistence.
// Lookups return (nil, nil) when no record matches.
type SettingsRepository interface {
	GetByShop(ctx context.Context, shop string) (*domain.ShopSettings, error)

	// GetByAccessTokenHash retrieves the settings whose fulfillment access token hashes to tokenHash
	GetByAccessTokenHash(ctx context.Context, tokenHash string) (*domain.ShopSettings, error)

	// Upsert creates or replaces the settings of settings.Shop
	Upsert(ctx context.Context, settings *domain.ShopSettings, accessTokenHash string) error

	// SetStorefrontToken stores the storefront token, creating the record if needed
	SetStorefrontToken(ctx context.Context, shop, encryptedToken string) error

	// ClearStorefrontToken removes the storefront token of an uninstalled shop
	ClearStorefrontToken(ctx context.Context, shop string) error
}

// SessionRepository defines the interface for installed shop sessions
type SessionRepository interface {
	Save(ctx context.Context, session *domain.Session) error
	Get(ctx context.Context, shop string) (*domain.Session, error)
	Delete(ctx context.Context, shop string) error
}

// StateStore keeps one-time OAuth state nonces
type StateStore interface {
	// Put stores state for shop until ttl elapses
	Put(ctx context.Context, state, shop string, ttl time.Duration) error

	// Consume returns the shop bound to state and removes it.
	// An unknown or expired state returns domain.ErrInvalidState.
	Consume(ctx context.Context, state string) (string, error)
}

// ActivityLogRepository defines the interface for the append-only activity log
type ActivityLogRepository interface {
	Append(ctx context.Context, entry *domain.ActivityLogEntry) error
}

// ActivityPublisher mirrors activity entries to an event stream
type ActivityPublisher interface {
	Publish(ctx context.Context, entry *domain.ActivityLogEntry) error
	Close() error
}

// EncryptionService encrypts secrets stored at rest
type EncryptionService interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}
