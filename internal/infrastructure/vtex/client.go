package vtex

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"archie-core-vtex-connector/internal/domain"
	"archie-core-vtex-connector/internal/infrastructure/metrics"
	"archie-core-vtex-connector/internal/infrastructure/ratelimit"
	"archie-core-vtex-connector/internal/ports"

	"github.com/rs/zerolog"
)

const (
	platform = "vtex"

	defaultAccountURLFormat   = "https://%s.myvtex.com"
	defaultSuggestionsBaseURL = "https://api.vtex.com"

	maxErrorBody = 4 << 10
)

// APIError is a non-2xx marketplace response
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("vtex responded %d: %s", e.StatusCode, e.Body)
}

// Config holds the transport settings of the marketplace client
type Config struct {
	HTTPClient         *http.Client
	RateLimit          float64 // calls per second per account
	AccountURLFormat   string  // fmt pattern taking the account name
	SuggestionsBaseURL string
}

type client struct {
	httpClient         *http.Client
	rateLimiter        *ratelimit.KeyedLimiter
	accountURLFormat   string
	suggestionsBaseURL string
	logger             zerolog.Logger
}

// NewClient creates a new VTEX client adapter
func NewClient(cfg Config, logger zerolog.Logger) ports.VTEXClient {
	c := &client{
		httpClient:         cfg.HTTPClient,
		rateLimiter:        ratelimit.NewKeyedLimiter(cfg.RateLimit, 10),
		accountURLFormat:   cfg.AccountURLFormat,
		suggestionsBaseURL: cfg.SuggestionsBaseURL,
		logger:             logger,
	}
	if c.httpClient == nil {
		c.httpClient = http.DefaultClient
	}
	if c.accountURLFormat == "" {
		c.accountURLFormat = defaultAccountURLFormat
	}
	if c.suggestionsBaseURL == "" {
		c.suggestionsBaseURL = defaultSuggestionsBaseURL
	}
	return c
}

// Catalog API

func (c *client) ChangeNotification(ctx context.Context, creds domain.MarketplaceCredentials, skuID string) error {
	path := fmt.Sprintf("/api/catalog_system/pvt/skuseller/changenotification/%s/%s",
		url.PathEscape(creds.SellerID), url.PathEscape(skuID))

	err := c.do(ctx, creds, "change_notification", http.MethodPost, c.accountURL(creds)+path, nil)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", domain.ErrSKUNotFound, skuID)
	}
	if err != nil {
		return fmt.Errorf("failed to send change notification: %w", err)
	}
	return nil
}

func (c *client) SendSKUSuggestion(ctx context.Context, creds domain.MarketplaceCredentials, skuID string, suggestion *domain.SKUSuggestion) error {
	endpoint := fmt.Sprintf("%s/%s/suggestions/%s/%s", c.suggestionsBaseURL,
		url.PathEscape(creds.AccountName), url.PathEscape(creds.SellerID), url.PathEscape(skuID))

	if err := c.do(ctx, creds, "sku_suggestion", http.MethodPut, endpoint, suggestion); err != nil {
		return fmt.Errorf("failed to send sku suggestion: %w", err)
	}
	return nil
}

// OMS API

func (c *client) CancelOrder(ctx context.Context, creds domain.MarketplaceCredentials, orderID string) error {
	path := fmt.Sprintf("/api/oms/pvt/orders/%s/cancel", url.PathEscape(orderID))
	if err := c.do(ctx, creds, "cancel_order", http.MethodPost, c.accountURL(creds)+path, nil); err != nil {
		return fmt.Errorf("failed to cancel order: %w", err)
	}
	return nil
}

func (c *client) NotifyInvoice(ctx context.Context, creds domain.MarketplaceCredentials, orderID string, invoice *domain.Invoice) error {
	path := fmt.Sprintf("/api/oms/pvt/orders/%s/invoice", url.PathEscape(orderID))
	if err := c.do(ctx, creds, "notify_invoice", http.MethodPost, c.accountURL(creds)+path, invoice); err != nil {
		return fmt.Errorf("failed to notify invoice: %w", err)
	}
	return nil
}

func (c *client) UpdateTracking(ctx context.Context, creds domain.MarketplaceCredentials, orderID, invoiceNumber string, tracking *domain.TrackingUpdate) error {
	path := fmt.Sprintf("/api/oms/pvt/orders/%s/invoice/%s", url.PathEscape(orderID), url.PathEscape(invoiceNumber))
	if err := c.do(ctx, creds, "update_tracking", http.MethodPatch, c.accountURL(creds)+path, tracking); err != nil {
		return fmt.Errorf("failed to update tracking: %w", err)
	}
	return nil
}

func (c *client) accountURL(creds domain.MarketplaceCredentials) string {
	return fmt.Sprintf(c.accountURLFormat, creds.AccountName)
}

// do sends one authenticated request. A nil body sends no payload.
func (c *client) do(ctx context.Context, creds domain.MarketplaceCredentials, operation, method, endpoint string, body any) (err error) {
	defer func() { metrics.ObserveOutbound(platform, operation, err) }()

	if err := c.rateLimiter.Wait(ctx, creds.AccountName); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-VTEX-API-AppKey", creds.AppKey)
	req.Header.Set("X-VTEX-API-AppToken", creds.AppToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Debug().
			Str("operation", operation).
			Int("status", resp.StatusCode).
			Str("account", creds.AccountName).
			Msg("VTEX request failed")
		return &APIError{StatusCode: resp.StatusCode, Body: string(msg)}
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
