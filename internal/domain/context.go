package domain

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const shopContextKey contextKey = "shop_context"

var shopDomainPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9\-]*\.myshopify\.com$`)

// ShopContext is the shop/host pair an embedded-app request is made for.
// It is extracted and validated once at the HTTP boundary.
type ShopContext struct {
	Shop string
	Host string
}

// ValidateShop checks that shop is a myshopify.com domain
func ValidateShop(shop string) error {
	if !shopDomainPattern.MatchString(shop) {
		return fmt.Errorf("%w: %q", ErrInvalidShop, shop)
	}
	return nil
}

// ShopContextFromRequest reads shop and host from the query string, falling back
// to the query string of the Referer header (embedded apps call back from the admin iframe).
func ShopContextFromRequest(r *http.Request) (ShopContext, error) {
	query := r.URL.Query()
	if query.Get("shop") == "" {
		if referer := r.Header.Get("Referer"); referer != "" {
			if u, err := url.Parse(referer); err == nil {
				query = u.Query()
			}
		}
	}

	sc := ShopContext{
		Shop: strings.ToLower(strings.TrimSpace(query.Get("shop"))),
		Host: query.Get("host"),
	}
	if sc.Host == "" {
		return ShopContext{}, fmt.Errorf("%w: missing host", ErrInvalidShop)
	}
	if err := ValidateShop(sc.Shop); err != nil {
		return ShopContext{}, err
	}
	return sc, nil
}

// WithShopContext adds the shop context to ctx
func WithShopContext(ctx context.Context, sc ShopContext) context.Context {
	return context.WithValue(ctx, shopContextKey, sc)
}

// ShopContextFrom retrieves the shop context from ctx
func ShopContextFrom(ctx context.Context) (ShopContext, bool) {
	sc, ok := ctx.Value(shopContextKey).(ShopContext)
	return sc, ok
}
