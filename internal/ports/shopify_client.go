package ports

import (
	"context"
	"net/http"
	"net/url"

	"archie-core-vtex-connector/internal/domain"
)

// ShopifyClient defines the interface for storefront API operations
type ShopifyClient interface {
	// Authentication
	GenerateAuthURL(shop string, redirectURI string, state string) (string, error)
	ExchangeToken(ctx context.Context, shop string, code string) (string, error)
	VerifyAuthorizationURL(u *url.URL) (bool, error)
	VerifyWebhook(r *http.Request) bool

	// Shop API
	GetShop(ctx context.Context, shop string, accessToken string) (*domain.ShopInfo, error)
	ListShippingZones(ctx context.Context, shop string, accessToken string) ([]domain.ShippingZone, error)

	// Variant lookup (GraphQL)
	GetVariant(ctx context.Context, shop string, accessToken string, variantID int64) (*domain.Variant, error)

	// Order API
	CreateOrder(ctx context.Context, shop string, accessToken string, order *domain.StorefrontOrder) (int64, error)
	CancelOrder(ctx context.Context, shop string, accessToken string, orderID int64) error

	// Webhook API
	ListWebhooks(ctx context.Context, shop string, accessToken string) ([]domain.WebhookSubscription, error)
	CreateWebhook(ctx context.Context, shop string, accessToken string, topic string, address string) (*domain.WebhookSubscription, error)
}

// VTEXClient defines the interface for marketplace API operations
type VTEXClient interface {
	// Catalog API. ChangeNotification returns domain.ErrSKUNotFound when the
	// marketplace does not know the SKU yet.
	ChangeNotification(ctx context.Context, creds domain.MarketplaceCredentials, skuID string) error
	SendSKUSuggestion(ctx context.Context, creds domain.MarketplaceCredentials, skuID string, suggestion *domain.SKUSuggestion) error

	// OMS API
	CancelOrder(ctx context.Context, creds domain.MarketplaceCredentials, orderID string) error
	NotifyInvoice(ctx context.Context, creds domain.MarketplaceCredentials, orderID string, invoice *domain.Invoice) error
	UpdateTracking(ctx context.Context, creds domain.MarketplaceCredentials, orderID, invoiceNumber string, tracking *domain.TrackingUpdate) error
}
