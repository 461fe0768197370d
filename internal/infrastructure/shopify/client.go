package shopify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"archie-core-vtex-connector/internal/domain"
	"archie-core-vtex-connector/internal/infrastructure/metrics"
	"archie-core-vtex-connector/internal/infrastructure/ratelimit"
	"archie-core-vtex-connector/internal/ports"

	goshopify "github.com/bold-commerce/go-shopify/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const platform = "shopify"

// Config holds the app credentials and transport settings of the client
type Config struct {
	APIKey     string
	APISecret  string
	APIVersion string
	Scopes     []string
	HTTPClient *http.Client
	RateLimit  float64 // calls per second per shop
}

type client struct {
	apiKey      string
	app         goshopify.App
	scopes      []string
	apiVersion  string
	httpClient  *http.Client
	rateLimiter *ratelimit.KeyedLimiter
	logger      zerolog.Logger
}

// NewClient creates a new Shopify client adapter
func NewClient(cfg Config, logger zerolog.Logger) ports.ShopifyClient {
	app := goshopify.App{
		ApiKey:    cfg.APIKey,
		ApiSecret: cfg.APISecret,
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &client{
		apiKey:      cfg.APIKey,
		app:         app,
		scopes:      cfg.Scopes,
		apiVersion:  cfg.APIVersion,
		httpClient:  httpClient,
		rateLimiter: ratelimit.NewKeyedLimiter(cfg.RateLimit, 4),
		logger:      logger,
	}
}

// createClient waits for the shop's rate limit and builds a goshopify client
func (c *client) createClient(ctx context.Context, shopDomain string, accessToken string) (*goshopify.Client, error) {
	if err := c.rateLimiter.Wait(ctx, shopDomain); err != nil {
		return nil, err
	}

	opts := []goshopify.Option{goshopify.WithHTTPClient(c.httpClient)}
	if c.apiVersion != "" {
		opts = append(opts, goshopify.WithVersion(c.apiVersion))
	}
	client, err := goshopify.NewClient(c.app, shopDomain, accessToken, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

// Authentication methods

func (c *client) GenerateAuthURL(shop string, redirectURI string, state string) (string, error) {
	scopesStr := strings.Join(c.scopes, ",")

	c.logger.Debug().
		Str("shop", shop).
		Strs("scopes", c.scopes).
		Msg("Generating OAuth authorization URL")

	authURL := fmt.Sprintf(
		"https://%s/admin/oauth/authorize?client_id=%s&scope=%s&redirect_uri=%s&state=%s",
		shop,
		url.QueryEscape(c.apiKey),
		url.QueryEscape(scopesStr),
		url.QueryEscape(redirectURI),
		url.QueryEscape(state),
	)
	return authURL, nil
}

func (c *client) ExchangeToken(ctx context.Context, shop string, code string) (string, error) {
	token, err := c.app.GetAccessToken(ctx, shop, code)
	metrics.ObserveOutbound(platform, "exchange_token", err)
	if err != nil {
		return "", fmt.Errorf("failed to exchange token: %w", err)
	}
	return token, nil
}

func (c *client) VerifyAuthorizationURL(u *url.URL) (bool, error) {
	return c.app.VerifyAuthorizationURL(u)
}

// VerifyWebhook checks the HMAC header of a webhook request. The body stays readable.
func (c *client) VerifyWebhook(r *http.Request) bool {
	return c.app.VerifyWebhookRequest(r)
}

// Shop API

func (c *client) GetShop(ctx context.Context, shopDomain string, accessToken string) (*domain.ShopInfo, error) {
	client, err := c.createClient(ctx, shopDomain, accessToken)
	if err != nil {
		return nil, err
	}
	shop, err := client.Shop.Get(ctx, nil)
	metrics.ObserveOutbound(platform, "get_shop", err)
	if err != nil {
		return nil, fmt.Errorf("failed to get shop: %w", err)
	}
	return &domain.ShopInfo{Domain: shop.Domain, Currency: shop.Currency}, nil
}

func (c *client) ListShippingZones(ctx context.Context, shopDomain string, accessToken string) ([]domain.ShippingZone, error) {
	client, err := c.createClient(ctx, shopDomain, accessToken)
	if err != nil {
		return nil, err
	}
	var resource struct {
		ShippingZones []domain.ShippingZone `json:"shipping_zones"`
	}
	err = client.Get(ctx, "shipping_zones.json", &resource, nil)
	metrics.ObserveOutbound(platform, "list_shipping_zones", err)
	if err != nil {
		return nil, fmt.Errorf("failed to list shipping zones: %w", err)
	}
	return resource.ShippingZones, nil
}

// Variant lookup

type variantResponse struct {
	ProductVariant *struct {
		Title             string          `json:"title"`
		Price             decimal.Decimal `json:"price"`
		InventoryQuantity int             `json:"inventoryQuantity"`
		Product           struct {
			Collections struct {
				Edges []struct {
					Node struct {
						Title string `json:"title"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"collections"`
		} `json:"product"`
	} `json:"productVariant"`
}

// GetVariant returns (nil, nil) when the storefront has no such variant
func (c *client) GetVariant(ctx context.Context, shopDomain string, accessToken string, variantID int64) (*domain.Variant, error) {
	client, err := c.createClient(ctx, shopDomain, accessToken)
	if err != nil {
		return nil, err
	}
	var resp variantResponse
	err = client.GraphQL.Query(ctx, variantQuery, map[string]any{"id": variantGID(variantID)}, &resp)
	metrics.ObserveOutbound(platform, "get_variant", err)
	if err != nil {
		return nil, fmt.Errorf("failed to get variant %d: %w", variantID, err)
	}
	if resp.ProductVariant == nil {
		return nil, nil
	}

	pv := resp.ProductVariant
	variant := &domain.Variant{
		ID:                variantID,
		Title:             pv.Title,
		Price:             pv.Price,
		InventoryQuantity: pv.InventoryQuantity,
	}
	if edges := pv.Product.Collections.Edges; len(edges) > 0 {
		variant.CollectionTitle = edges[0].Node.Title
	}
	return variant, nil
}

// Order API

func (c *client) CreateOrder(ctx context.Context, shopDomain string, accessToken string, order *domain.StorefrontOrder) (int64, error) {
	client, err := c.createClient(ctx, shopDomain, accessToken)
	if err != nil {
		return 0, err
	}
	body := struct {
		Order *domain.StorefrontOrder `json:"order"`
	}{Order: order}
	var created struct {
		Order struct {
			ID int64 `json:"id"`
		} `json:"order"`
	}
	err = client.Post(ctx, "orders.json", body, &created)
	metrics.ObserveOutbound(platform, "create_order", err)
	if err != nil {
		return 0, fmt.Errorf("failed to create order: %w", err)
	}
	return created.Order.ID, nil
}

func (c *client) CancelOrder(ctx context.Context, shopDomain string, accessToken string, orderID int64) error {
	client, err := c.createClient(ctx, shopDomain, accessToken)
	if err != nil {
		return err
	}
	_, err = client.Order.Cancel(ctx, uint64(orderID), nil)
	metrics.ObserveOutbound(platform, "cancel_order", err)
	if err != nil {
		return fmt.Errorf("failed to cancel order: %w", err)
	}
	return nil
}

// Webhook API

func (c *client) ListWebhooks(ctx context.Context, shopDomain string, accessToken string) ([]domain.WebhookSubscription, error) {
	client, err := c.createClient(ctx, shopDomain, accessToken)
	if err != nil {
		return nil, err
	}
	webhooks, err := client.Webhook.List(ctx, nil)
	metrics.ObserveOutbound(platform, "list_webhooks", err)
	if err != nil {
		return nil, fmt.Errorf("failed to list webhooks: %w", err)
	}

	subs := make([]domain.WebhookSubscription, 0, len(webhooks))
	for _, w := range webhooks {
		subs = append(subs, toSubscription(w))
	}
	return subs, nil
}

func (c *client) CreateWebhook(ctx context.Context, shopDomain string, accessToken string, topic string, address string) (*domain.WebhookSubscription, error) {
	client, err := c.createClient(ctx, shopDomain, accessToken)
	if err != nil {
		return nil, err
	}
	webhook := goshopify.Webhook{
		Topic:   topic,
		Address: address,
		Format:  "json",
	}
	created, err := client.Webhook.Create(ctx, webhook)
	metrics.ObserveOutbound(platform, "create_webhook", err)
	if err != nil {
		return nil, fmt.Errorf("failed to create webhook: %w", err)
	}
	sub := toSubscription(*created)
	return &sub, nil
}

func toSubscription(w goshopify.Webhook) domain.WebhookSubscription {
	return domain.WebhookSubscription{
		Topic:   w.Topic,
		Address: w.Address,
	}
}
