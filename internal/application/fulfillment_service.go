package application

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"archie-core-vtex-connector/internal/domain"
	"archie-core-vtex-connector/internal/mapping"
	"archie-core-vtex-connector/internal/ports"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// FulfillmentService answers the marketplace fulfillment API on behalf of a shop
type FulfillmentService struct {
	settings *SettingsService
	shopify  ports.ShopifyClient
	logger   zerolog.Logger
	now      func() time.Time
}

// NewFulfillmentService creates a new fulfillment service
func NewFulfillmentService(settings *SettingsService, shopify ports.ShopifyClient, logger zerolog.Logger) *FulfillmentService {
	return &FulfillmentService{
		settings: settings,
		shopify:  shopify,
		logger:   logger,
		now:      time.Now,
	}
}

// Authenticate resolves the shop behind a marketplace access token
func (s *FulfillmentService) Authenticate(ctx context.Context, token string) (*domain.ShopSettings, error) {
	return s.settings.GetByAccessToken(ctx, token)
}

// Simulate quotes price, stock and shipping for a marketplace cart
func (s *FulfillmentService) Simulate(ctx context.Context, settings *domain.ShopSettings, req *domain.SimulationRequest) (*domain.SimulationResponse, error) {
	ids := make([]domain.SkuID, len(req.Items))
	for i, item := range req.Items {
		ids[i] = item.ID
	}

	var (
		variants []*domain.Variant
		zones    []domain.ShippingZone
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		variants, err = mapping.ResolveVariants(gctx, ids, s.variantLookup(settings))
		return err
	})
	g.Go(func() error {
		var err error
		zones, err = s.shopify.ListShippingZones(gctx, settings.Shop, settings.ShopifyToken)
		if err != nil {
			return fmt.Errorf("failed to list shipping zones: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	shipping := mapping.SplitShipping(mapping.DomesticShippingCost(zones), len(req.Items))
	if shipping == 0 {
		s.logger.Debug().Str("shop", settings.Shop).Msg("No domestic shipping rate, quoting free shipping")
	}

	items := mapping.QuoteItems(req, variants, settings.SellerID)
	logistics := mapping.LogisticsLines(req, variants, shipping)
	return mapping.SimulationResponse(req, items, logistics), nil
}

// PlaceOrder creates the storefront order for an array-wrapped marketplace order.
// Only the first element of the array is placed.
func (s *FulfillmentService) PlaceOrder(ctx context.Context, settings *domain.ShopSettings, body []byte) ([]domain.PlacementAck, error) {
	var orders []json.RawMessage
	if err := json.Unmarshal(body, &orders); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}
	if len(orders) == 0 {
		return nil, fmt.Errorf("%w: empty order array", domain.ErrInvalidPayload)
	}

	var order domain.MarketplaceOrder
	if err := json.Unmarshal(orders[0], &order); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}
	var echo domain.PlacementEcho
	if err := json.Unmarshal(orders[0], &echo); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}

	ids := make([]domain.SkuID, len(order.Items))
	for i, item := range order.Items {
		ids[i] = item.ID
	}
	variants, err := mapping.ResolveVariants(ctx, ids, s.variantLookup(settings))
	if err != nil {
		return nil, err
	}

	storefrontOrder, err := mapping.StorefrontOrder(&order, variants)
	if err != nil {
		return nil, err
	}

	orderID, err := s.shopify.CreateOrder(ctx, settings.Shop, settings.ShopifyToken, storefrontOrder)
	if err != nil {
		return nil, fmt.Errorf("failed to create storefront order: %w", err)
	}

	s.logger.Info().
		Str("shop", settings.Shop).
		Str("marketplaceOrderId", order.MarketplaceOrderID).
		Int64("orderId", orderID).
		Msg("Storefront order created")

	return []domain.PlacementAck{mapping.PlacementAck(&order, echo, orderID)}, nil
}

// CancelOrder cancels the storefront order orderID at the marketplace's request
func (s *FulfillmentService) CancelOrder(ctx context.Context, settings *domain.ShopSettings, orderID string, req domain.OrderActionRequest) (domain.OrderAck, error) {
	id, err := strconv.ParseInt(orderID, 10, 64)
	if err != nil {
		return domain.OrderAck{}, fmt.Errorf("%w: order id %q", domain.ErrInvalidPayload, orderID)
	}

	if err := s.shopify.CancelOrder(ctx, settings.Shop, settings.ShopifyToken, id); err != nil {
		return domain.OrderAck{}, fmt.Errorf("failed to cancel storefront order: %w", err)
	}

	s.logger.Info().Str("shop", settings.Shop).Str("orderId", orderID).Msg("Storefront order cancelled")
	return mapping.OrderAck(req.MarketplaceOrderID, orderID, s.now()), nil
}

// FulfillOrder acknowledges a marketplace fulfillment request.
// Payment capture happens through the orders/paid webhook flow, so nothing is sent to the storefront.
func (s *FulfillmentService) FulfillOrder(ctx context.Context, settings *domain.ShopSettings, orderID string, req domain.OrderActionRequest) (domain.OrderAck, error) {
	s.logger.Info().Str("shop", settings.Shop).Str("orderId", orderID).Msg("Marketplace fulfillment acknowledged")
	return mapping.OrderAck(req.MarketplaceOrderID, orderID, s.now()), nil
}

func (s *FulfillmentService) variantLookup(settings *domain.ShopSettings) mapping.VariantLookup {
	return func(ctx context.Context, variantID int64) (*domain.Variant, error) {
		return s.shopify.GetVariant(ctx, settings.Shop, settings.ShopifyToken, variantID)
	}
}
