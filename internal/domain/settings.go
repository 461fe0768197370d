package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// ShopSettings is the per-shop credential record used by every translator.
// One record per connected shop, keyed by Shop.
type ShopSettings struct {
	ID           string    `json:"-"`
	Shop         string    `json:"shop"`
	AccountName  string    `json:"account_name"`
	AppKey       string    `json:"app_key"`
	AppToken     string    `json:"app_token"`
	SellerID     string    `json:"seller_id"`
	AccessToken  string    `json:"access_token"` // authenticates inbound marketplace calls
	ShopifyToken string    `json:"-"`            // storefront Admin API token
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// SettingsForm is the subset of ShopSettings edited from the settings screen
type SettingsForm struct {
	AccountName string `json:"account_name"`
	AppKey      string `json:"app_key"`
	AppToken    string `json:"app_token"`
	SellerID    string `json:"seller_id"`
	AccessToken string `json:"access_token"`
}

// MarketplaceCredentials identifies a VTEX account and the API key pair used to call it
type MarketplaceCredentials struct {
	AccountName string
	AppKey      string
	AppToken    string
	SellerID    string
}

// Form returns the editable fields of the settings
func (s *ShopSettings) Form() SettingsForm {
	return SettingsForm{
		AccountName: s.AccountName,
		AppKey:      s.AppKey,
		AppToken:    s.AppToken,
		SellerID:    s.SellerID,
		AccessToken: s.AccessToken,
	}
}

// secretMask prefixes secrets shown on the settings screen
const secretMask = "********"

// MaskSecret hides a secret for display, keeping its last four characters
func MaskSecret(secret string) string {
	switch {
	case secret == "":
		return ""
	case len(secret) <= 4:
		return secretMask
	}
	return secretMask + secret[len(secret)-4:]
}

// IsMasked reports whether v is a value produced by MaskSecret
func IsMasked(v string) bool {
	return strings.HasPrefix(v, secretMask)
}

// MaskedForm returns the editable fields with the secrets masked
func (s *ShopSettings) MaskedForm() SettingsForm {
	form := s.Form()
	form.AppToken = MaskSecret(form.AppToken)
	form.AccessToken = MaskSecret(form.AccessToken)
	return form
}

// Unmask replaces masked secrets in form that match the stored ones with the stored values
func (s *ShopSettings) Unmask(form SettingsForm) SettingsForm {
	if IsMasked(form.AppToken) && form.AppToken == MaskSecret(s.AppToken) {
		form.AppToken = s.AppToken
	}
	if IsMasked(form.AccessToken) && form.AccessToken == MaskSecret(s.AccessToken) {
		form.AccessToken = s.AccessToken
	}
	return form
}

// Apply copies the form values onto the settings
func (s *ShopSettings) Apply(form SettingsForm) {
	s.AccountName = form.AccountName
	s.AppKey = form.AppKey
	s.AppToken = form.AppToken
	s.SellerID = form.SellerID
	s.AccessToken = form.AccessToken
}

// Marketplace returns the VTEX credentials held by the settings
func (s *ShopSettings) Marketplace() MarketplaceCredentials {
	return MarketplaceCredentials{
		AccountName: s.AccountName,
		AppKey:      s.AppKey,
		AppToken:    s.AppToken,
		SellerID:    s.SellerID,
	}
}

// MarketplaceConfigured reports whether the VTEX side of the settings has been filled in
func (s *ShopSettings) MarketplaceConfigured() bool {
	return s.AccountName != "" && s.AppKey != "" && s.AppToken != "" && s.SellerID != ""
}

// HashAccessToken returns the digest the fulfillment access token is looked up by
func HashAccessToken(token string) string {
	if token == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
