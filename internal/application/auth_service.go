package application

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"archie-core-vtex-connector/internal/domain"
	"archie-core-vtex-connector/internal/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AuthService runs the storefront install flow and keeps installed shops authorized
type AuthService struct {
	shopify  ports.ShopifyClient
	settings *SettingsService
	sessions ports.SessionRepository
	states   ports.StateStore
	logger   zerolog.Logger
	appURL   string
	scope    string
	now      func() time.Time
}

// NewAuthService creates a new auth service. appURL is the public base URL of the connector.
func NewAuthService(
	shopify ports.ShopifyClient,
	settings *SettingsService,
	sessions ports.SessionRepository,
	states ports.StateStore,
	logger zerolog.Logger,
	appURL string,
	scopes []string,
) *AuthService {
	return &AuthService{
		shopify:  shopify,
		settings: settings,
		sessions: sessions,
		states:   states,
		logger:   logger,
		appURL:   strings.TrimSuffix(appURL, "/"),
		scope:    strings.Join(scopes, ","),
		now:      time.Now,
	}
}

// WebhookAddress is where the storefront delivers webhooks
func (s *AuthService) WebhookAddress() string {
	return s.appURL + "/webhooks"
}

// BeginInstall stores a one-time state for shop and returns the authorize URL to redirect to
func (s *AuthService) BeginInstall(ctx context.Context, shop string) (string, error) {
	shop = strings.ToLower(strings.TrimSpace(shop))
	if err := domain.ValidateShop(shop); err != nil {
		return "", err
	}

	state := uuid.NewString()
	if err := s.states.Put(ctx, state, shop, domain.OAuthStateTTL); err != nil {
		return "", fmt.Errorf("failed to store oauth state: %w", err)
	}

	authURL, err := s.shopify.GenerateAuthURL(shop, s.appURL+"/auth/callback", state)
	if err != nil {
		return "", fmt.Errorf("failed to generate auth URL: %w", err)
	}

	s.logger.Info().Str("shop", shop).Msg("Install started")
	return authURL, nil
}

// CompleteInstall verifies the OAuth callback, stores the storefront token and
// registers webhooks. It returns the path to send the merchant to.
func (s *AuthService) CompleteInstall(ctx context.Context, callback *url.URL) (string, error) {
	query := callback.Query()
	shop := strings.ToLower(query.Get("shop"))
	if err := domain.ValidateShop(shop); err != nil {
		return "", err
	}

	ok, err := s.shopify.VerifyAuthorizationURL(callback)
	if err != nil || !ok {
		return "", fmt.Errorf("%w: oauth callback for %s", domain.ErrInvalidSignature, shop)
	}

	stateShop, err := s.states.Consume(ctx, query.Get("state"))
	if err != nil {
		return "", err
	}
	if stateShop != shop {
		return "", fmt.Errorf("%w: state issued for %s", domain.ErrInvalidState, stateShop)
	}

	token, err := s.shopify.ExchangeToken(ctx, shop, query.Get("code"))
	if err != nil {
		return "", fmt.Errorf("failed to exchange token: %w", err)
	}
	if err := s.settings.SaveStorefrontToken(ctx, shop, token); err != nil {
		return "", err
	}

	now := s.now().UTC()
	if err := s.sessions.Save(ctx, &domain.Session{
		Shop:        shop,
		Scope:       s.scope,
		InstalledAt: now,
		UpdatedAt:   now,
	}); err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}

	// The install succeeds even if some subscriptions could not be created;
	// they are retried on the next install.
	if err := s.EnsureWebhooks(ctx, shop, token); err != nil {
		s.logger.Warn().Err(err).Str("shop", shop).Msg("Webhook registration incomplete")
	}

	s.logger.Info().Str("shop", shop).Msg("Install completed")
	return "/?shop=" + url.QueryEscape(shop) + "&host=" + url.QueryEscape(query.Get("host")), nil
}

// EnsureWebhooks creates the subscriptions shop is missing. Existing (topic, address)
// pairs are left alone; a failed topic does not stop the others.
func (s *AuthService) EnsureWebhooks(ctx context.Context, shop, accessToken string) error {
	existing, err := s.shopify.ListWebhooks(ctx, shop, accessToken)
	if err != nil {
		return fmt.Errorf("failed to list webhooks: %w", err)
	}

	address := s.WebhookAddress()
	registered := make(map[string]bool, len(existing))
	for _, sub := range existing {
		if sub.Address == address {
			registered[sub.Topic] = true
		}
	}

	var errs []error
	for _, topic := range domain.WebhookTopics {
		if registered[topic] {
			continue
		}
		if _, err := s.shopify.CreateWebhook(ctx, shop, accessToken, topic, address); err != nil {
			errs = append(errs, fmt.Errorf("failed to create %s webhook: %w", topic, err))
			continue
		}
		s.logger.Info().Str("shop", shop).Str("topic", topic).Msg("Webhook registered")
	}
	return errors.Join(errs...)
}

// IsAuthorized reports whether shop has completed the install flow
func (s *AuthService) IsAuthorized(ctx context.Context, shop string) (bool, error) {
	session, err := s.sessions.Get(ctx, shop)
	if err != nil {
		return false, err
	}
	return session != nil, nil
}

// Uninstall forgets the session and storefront token of shop
func (s *AuthService) Uninstall(ctx context.Context, shop string) error {
	var errs []error
	if err := s.sessions.Delete(ctx, shop); err != nil {
		errs = append(errs, fmt.Errorf("failed to delete session: %w", err))
	}
	if err := s.settings.ClearStorefrontToken(ctx, shop); err != nil {
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		s.logger.Info().Str("shop", shop).Msg("Shop uninstalled")
	}
	return errors.Join(errs...)
}
