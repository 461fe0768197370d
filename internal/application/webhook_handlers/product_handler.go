package webhook_handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"archie-core-vtex-connector/internal/application"
	"archie-core-vtex-connector/internal/domain"
	"archie-core-vtex-connector/internal/mapping"
	"archie-core-vtex-connector/internal/ports"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// variantConcurrency bounds concurrent marketplace calls per product webhook
const variantConcurrency = 8

// ProductHandler syncs updated storefront products to the marketplace catalog.
// Every variant is announced through a change notification; variants the
// marketplace does not know yet are proposed as SKU suggestions when the
// product has images.
type ProductHandler struct {
	logger   zerolog.Logger
	settings *application.SettingsService
	shopify  ports.ShopifyClient
	vtex     ports.VTEXClient
}

// NewProductHandler creates a new product webhook handler
func NewProductHandler(
	logger zerolog.Logger,
	settings *application.SettingsService,
	shopify ports.ShopifyClient,
	vtex ports.VTEXClient,
) *ProductHandler {
	return &ProductHandler{
		logger:   logger,
		settings: settings,
		shopify:  shopify,
		vtex:     vtex,
	}
}

// CanHandle returns true if this handler can process the given topic
func (h *ProductHandler) CanHandle(topic string) bool {
	return topic == domain.TopicProductsUpdate
}

// Handle processes a product webhook event
func (h *ProductHandler) Handle(ctx context.Context, event *domain.WebhookEvent) error {
	var product domain.ProductPayload
	if err := json.Unmarshal(event.Payload, &product); err != nil {
		return fmt.Errorf("failed to parse product webhook payload: %w", err)
	}

	settings, err := h.settings.GetByShop(ctx, event.Shop)
	if err != nil {
		return err
	}
	if !settings.MarketplaceConfigured() {
		h.logger.Debug().Str("shop", event.Shop).Msg("Marketplace credentials not configured, skipping catalog sync")
		return domain.ErrWebhookSkipped
	}
	creds := settings.Marketplace()

	shopInfo := sync.OnceValues(func() (*domain.ShopInfo, error) {
		return h.shopify.GetShop(ctx, settings.Shop, settings.ShopifyToken)
	})

	h.logger.Info().
		Str("shop", event.Shop).
		Int64("productId", product.ID).
		Int("variants", len(product.Variants)).
		Msg("Syncing product to marketplace")

	// Variants are independent; one failure does not cancel the others
	errs := make([]error, len(product.Variants))
	var g errgroup.Group
	g.SetLimit(variantConcurrency)
	for i, pv := range product.Variants {
		g.Go(func() error {
			errs[i] = h.syncVariant(ctx, settings, creds, &product, pv, shopInfo)
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}

func (h *ProductHandler) syncVariant(
	ctx context.Context,
	settings *domain.ShopSettings,
	creds domain.MarketplaceCredentials,
	product *domain.ProductPayload,
	pv domain.ProductVariant,
	shopInfo func() (*domain.ShopInfo, error),
) error {
	skuID := strconv.FormatInt(pv.ID, 10)

	err := h.vtex.ChangeNotification(ctx, creds, skuID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrSKUNotFound) {
		return fmt.Errorf("failed to notify change of sku %s: %w", skuID, err)
	}

	// The marketplace rejects suggestions without images
	if len(product.Images) == 0 {
		h.logger.Debug().Str("shop", settings.Shop).Str("skuId", skuID).Msg("Product has no images, skipping SKU suggestion")
		return nil
	}

	variant, err := h.shopify.GetVariant(ctx, settings.Shop, settings.ShopifyToken, pv.ID)
	if err != nil {
		return fmt.Errorf("failed to get variant %s: %w", skuID, err)
	}
	if variant == nil {
		return fmt.Errorf("%w: %s", domain.ErrVariantNotFound, skuID)
	}

	shop, err := shopInfo()
	if err != nil {
		return fmt.Errorf("failed to get shop: %w", err)
	}

	suggestion := mapping.SKUSuggestion(product, pv, variant, creds.SellerID, shop.Currency)
	if err := h.vtex.SendSKUSuggestion(ctx, creds, skuID, suggestion); err != nil {
		return fmt.Errorf("failed to send sku suggestion %s: %w", skuID, err)
	}

	h.logger.Info().Str("shop", settings.Shop).Str("skuId", skuID).Msg("SKU suggestion sent")
	return nil
}
