package middleware

import "net/http"

// embeddedFrameAncestors lets the storefront admin frame the settings screen
const embeddedFrameAncestors = "frame-ancestors https://*.myshopify.com https://admin.shopify.com"

// SecurityHeadersMiddleware sets the response headers every route shares
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			h.Set("Content-Security-Policy", embeddedFrameAncestors)
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			next.ServeHTTP(w, r)
		})
	}
}
