package webhook_handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"archie-core-vtex-connector/internal/application"
	"archie-core-vtex-connector/internal/domain"
	"archie-core-vtex-connector/internal/mapping"
	"archie-core-vtex-connector/internal/ports"

	"github.com/rs/zerolog"
)

// OrderHandler mirrors storefront order state changes onto marketplace orders
type OrderHandler struct {
	logger   zerolog.Logger
	settings *application.SettingsService
	vtex     ports.VTEXClient
	now      func() time.Time
}

// NewOrderHandler creates a new order webhook handler
func NewOrderHandler(logger zerolog.Logger, settings *application.SettingsService, vtex ports.VTEXClient) *OrderHandler {
	return &OrderHandler{
		logger:   logger,
		settings: settings,
		vtex:     vtex,
		now:      time.Now,
	}
}

// CanHandle returns true if this handler can process the given topic
func (h *OrderHandler) CanHandle(topic string) bool {
	return topic == domain.TopicOrdersCancelled ||
		topic == domain.TopicOrdersPaid ||
		topic == domain.TopicOrdersUpdated
}

// Handle processes an order webhook event
func (h *OrderHandler) Handle(ctx context.Context, event *domain.WebhookEvent) error {
	var order domain.OrderPayload
	if err := json.Unmarshal(event.Payload, &order); err != nil {
		return fmt.Errorf("failed to parse order webhook payload: %w", err)
	}

	if !order.FromMarketplace() {
		h.logger.Debug().Str("topic", event.Topic).Str("shop", event.Shop).Int64("orderId", order.ID).Msg("Order not placed by the marketplace, skipping")
		return domain.ErrWebhookSkipped
	}

	settings, err := h.settings.GetByShop(ctx, event.Shop)
	if err != nil {
		return err
	}
	if !settings.MarketplaceConfigured() {
		return fmt.Errorf("%w: %s", domain.ErrMarketplaceNotConfigured, event.Shop)
	}
	creds := settings.Marketplace()

	h.logger.Info().
		Str("topic", event.Topic).
		Str("shop", event.Shop).
		Int64("orderId", order.ID).
		Str("marketplaceOrderId", order.Reference).
		Msg("Processing order webhook event")

	switch event.Topic {
	case domain.TopicOrdersCancelled:
		if err := h.vtex.CancelOrder(ctx, creds, order.Reference); err != nil {
			return fmt.Errorf("failed to cancel marketplace order %s: %w", order.Reference, err)
		}
	case domain.TopicOrdersPaid:
		if err := h.vtex.NotifyInvoice(ctx, creds, order.Reference, mapping.Invoice(&order, h.now())); err != nil {
			return fmt.Errorf("failed to notify invoice for marketplace order %s: %w", order.Reference, err)
		}
	case domain.TopicOrdersUpdated:
		tracking, ok := mapping.Tracking(&order)
		if !ok {
			h.logger.Debug().Str("shop", event.Shop).Int64("orderId", order.ID).Msg("No tracking number yet")
			return domain.ErrWebhookSkipped
		}
		if err := h.vtex.UpdateTracking(ctx, creds, order.Reference, mapping.InvoiceNumber(&order), tracking); err != nil {
			return fmt.Errorf("failed to update tracking for marketplace order %s: %w", order.Reference, err)
		}
	}

	return nil
}
