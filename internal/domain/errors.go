package domain

import "errors"

var (
	// ErrUnauthorized is returned when an inbound call cannot be matched to a shop
	ErrUnauthorized = errors.New("unauthorized")

	// ErrSettingsNotFound is returned when a shop has no settings record
	ErrSettingsNotFound = errors.New("shop settings not found")

	// ErrMarketplaceNotConfigured is returned when a shop has not filled in its VTEX credentials
	ErrMarketplaceNotConfigured = errors.New("marketplace credentials not configured")

	// ErrSKUNotFound is returned by the marketplace when a SKU is unknown to it
	ErrSKUNotFound = errors.New("sku not found in marketplace")

	// ErrVariantNotFound is returned when the storefront has no variant for an id
	ErrVariantNotFound = errors.New("variant not found")

	// ErrInvalidShop is returned when a shop domain fails validation
	ErrInvalidShop = errors.New("invalid shop domain")

	// ErrInvalidState is returned when an OAuth callback carries an unknown or reused state
	ErrInvalidState = errors.New("invalid oauth state")

	// ErrInvalidSignature is returned when an HMAC check fails
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrInvalidPayload is returned when an inbound body cannot be decoded
	ErrInvalidPayload = errors.New("invalid payload")

	// ErrWebhookSkipped is returned by a webhook handler that had nothing to do for the event
	ErrWebhookSkipped = errors.New("webhook skipped")
)
