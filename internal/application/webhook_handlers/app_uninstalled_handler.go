package webhook_handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"archie-core-vtex-connector/internal/application"
	"archie-core-vtex-connector/internal/domain"

	"github.com/rs/zerolog"
)

// AppUninstalledHandler handles app uninstalled webhook events
type AppUninstalledHandler struct {
	logger zerolog.Logger
	auth   *application.AuthService
}

// NewAppUninstalledHandler creates a new app uninstalled webhook handler
func NewAppUninstalledHandler(logger zerolog.Logger, auth *application.AuthService) *AppUninstalledHandler {
	return &AppUninstalledHandler{
		logger: logger,
		auth:   auth,
	}
}

// CanHandle returns true if this handler can process the given topic
func (h *AppUninstalledHandler) CanHandle(topic string) bool {
	return topic == domain.TopicAppUninstalled
}

// Handle forgets the session and storefront token of the uninstalled shop.
// Settings are kept so a reinstall does not lose the marketplace credentials.
func (h *AppUninstalledHandler) Handle(ctx context.Context, event *domain.WebhookEvent) error {
	shopDomain := event.Shop
	if shopDomain == "" {
		var shopData struct {
			Domain          string `json:"domain"`
			MyshopifyDomain string `json:"myshopify_domain"`
		}
		if err := json.Unmarshal(event.Payload, &shopData); err != nil {
			return fmt.Errorf("failed to parse app uninstalled webhook payload: %w", err)
		}
		shopDomain = shopData.MyshopifyDomain
		if shopDomain == "" {
			shopDomain = shopData.Domain
		}
	}

	h.logger.Info().Str("topic", event.Topic).Str("shop", shopDomain).Msg("Processing app uninstalled webhook event")

	if err := h.auth.Uninstall(ctx, shopDomain); err != nil {
		return fmt.Errorf("failed to clean up uninstalled shop: %w", err)
	}
	return nil
}
