package application

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"archie-core-vtex-connector/internal/domain"
	"archie-core-vtex-connector/internal/ports"

	"github.com/rs/zerolog"
)

// SettingsService resolves and stores per-shop credentials.
// Secrets are encrypted before they reach the repository and decrypted on every read.
type SettingsService struct {
	settingsRepo  ports.SettingsRepository
	encryptionSvc ports.EncryptionService
	logger        zerolog.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(
	settingsRepo ports.SettingsRepository,
	encryptionService ports.EncryptionService,
	logger zerolog.Logger,
) *SettingsService {
	return &SettingsService{
		settingsRepo:  settingsRepo,
		encryptionSvc: encryptionService,
		logger:        logger,
	}
}

// GetByShop retrieves the settings of shop.
// Returns domain.ErrSettingsNotFound when the shop has no record.
func (s *SettingsService) GetByShop(ctx context.Context, shop string) (*domain.ShopSettings, error) {
	settings, err := s.settingsRepo.GetByShop(ctx, shop)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrSettingsNotFound, shop)
	}
	if err := s.decrypt(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// GetByAccessToken resolves the shop a marketplace call is made for.
// An empty or unknown token returns domain.ErrUnauthorized.
func (s *SettingsService) GetByAccessToken(ctx context.Context, token string) (*domain.ShopSettings, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}

	settings, err := s.settingsRepo.GetByAccessTokenHash(ctx, domain.HashAccessToken(token))
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := s.decrypt(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// SaveForm upserts the settings form of shop. Masked secrets matching the stored
// ones are kept; a blank access token is replaced with a freshly generated one.
// The returned form echoes the input plus any generated token.
func (s *SettingsService) SaveForm(ctx context.Context, shop string, form domain.SettingsForm) (*domain.SettingsForm, error) {
	shown := form
	if domain.IsMasked(form.AppToken) || domain.IsMasked(form.AccessToken) {
		current, err := s.GetByShop(ctx, shop)
		if err != nil && !errors.Is(err, domain.ErrSettingsNotFound) {
			return nil, err
		}
		if current != nil {
			form = current.Unmask(form)
		}
	}

	if form.AccessToken == "" {
		token, err := generateAccessToken()
		if err != nil {
			return nil, err
		}
		form.AccessToken = token
		shown.AccessToken = token
	}

	encryptedAppToken, err := s.encryptionSvc.Encrypt(form.AppToken)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt app token: %w", err)
	}
	encryptedAccessToken, err := s.encryptionSvc.Encrypt(form.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt access token: %w", err)
	}

	settings := &domain.ShopSettings{Shop: shop}
	settings.Apply(form)
	settings.AppToken = encryptedAppToken
	settings.AccessToken = encryptedAccessToken

	if err := s.settingsRepo.Upsert(ctx, settings, domain.HashAccessToken(form.AccessToken)); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	s.logger.Info().Str("shop", shop).Str("accountName", form.AccountName).Msg("Shop settings saved")
	return &shown, nil
}

// SaveStorefrontToken stores the storefront Admin API token obtained at install
func (s *SettingsService) SaveStorefrontToken(ctx context.Context, shop, token string) error {
	encrypted, err := s.encryptionSvc.Encrypt(token)
	if err != nil {
		return fmt.Errorf("failed to encrypt storefront token: %w", err)
	}
	if err := s.settingsRepo.SetStorefrontToken(ctx, shop, encrypted); err != nil {
		return fmt.Errorf("failed to store storefront token: %w", err)
	}
	return nil
}

// ClearStorefrontToken forgets the storefront token of an uninstalled shop
func (s *SettingsService) ClearStorefrontToken(ctx context.Context, shop string) error {
	if err := s.settingsRepo.ClearStorefrontToken(ctx, shop); err != nil {
		return fmt.Errorf("failed to clear storefront token: %w", err)
	}
	return nil
}

func (s *SettingsService) decrypt(settings *domain.ShopSettings) error {
	var err error
	if settings.AppToken, err = s.encryptionSvc.Decrypt(settings.AppToken); err != nil {
		return fmt.Errorf("failed to decrypt app token: %w", err)
	}
	if settings.AccessToken, err = s.encryptionSvc.Decrypt(settings.AccessToken); err != nil {
		return fmt.Errorf("failed to decrypt access token: %w", err)
	}
	if settings.ShopifyToken, err = s.encryptionSvc.Decrypt(settings.ShopifyToken); err != nil {
		return fmt.Errorf("failed to decrypt storefront token: %w", err)
	}
	return nil
}

// generateAccessToken returns 32 random bytes as 64 hex characters
func generateAccessToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
