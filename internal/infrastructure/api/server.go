package api

import (
	"encoding/json"
	"net/http"
	"sync"

	"archie-core-vtex-connector/internal/application"
	"archie-core-vtex-connector/internal/infrastructure/metrics"
	securitymiddleware "archie-core-vtex-connector/internal/infrastructure/middleware"
	"archie-core-vtex-connector/internal/ports"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Server exposes the connector over HTTP
type Server struct {
	fulfillment *application.FulfillmentService
	auth        *application.AuthService
	settings    *application.SettingsService
	activity    *application.ActivityService
	dispatcher  *application.WebhookDispatcher
	shopify     ports.ShopifyClient
	logger      zerolog.Logger
	inflight    sync.WaitGroup

	// SwaggerFile is the OpenAPI document served at /swagger/doc.json
	SwaggerFile string
	// AccessLog enables chi's request logger
	AccessLog bool
}

// NewServer creates a new HTTP server
func NewServer(
	fulfillment *application.FulfillmentService,
	auth *application.AuthService,
	settings *application.SettingsService,
	activity *application.ActivityService,
	dispatcher *application.WebhookDispatcher,
	shopify ports.ShopifyClient,
	logger zerolog.Logger,
) *Server {
	return &Server{
		fulfillment: fulfillment,
		auth:        auth,
		settings:    settings,
		activity:    activity,
		dispatcher:  dispatcher,
		shopify:     shopify,
		logger:      logger,
		SwaggerFile: "./docs/swagger.json",
	}
}

// Wait blocks until every acknowledged webhook has been handled
func (s *Server) Wait() {
	s.inflight.Wait()
}

// Routes builds the router with all middleware and endpoints
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if s.AccessLog {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(securitymiddleware.SecurityHeadersMiddleware())
	r.Use(securitymiddleware.MetricsMiddleware())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		http.ServeFile(w, r, s.SwaggerFile)
	})

	// Install flow
	r.Get("/auth", s.handleInstall)
	r.Get("/auth/callback", s.handleInstallCallback)

	// Storefront webhooks
	r.Post("/webhooks", s.handleWebhook)

	// Marketplace fulfillment API, authenticated by the ?token= access token
	r.Route("/api/fulfillment/pvt", func(r chi.Router) {
		r.Post("/orderForms/simulation", s.fulfillmentRoute(s.simulate))
		r.Post("/orders", s.fulfillmentRoute(s.placeOrder))
		r.Post("/orders/{order_id}/cancel", s.fulfillmentRoute(s.cancelOrder))
		r.Post("/orders/{order_id}/fulfill", s.fulfillmentRoute(s.fulfillOrder))
	})

	// Embedded settings screen
	r.Group(func(r chi.Router) {
		r.Use(shopContextMiddleware)
		r.Get("/admin/apps/vtex_connector_settings", s.handleGetSettings)
		r.Post("/admin/apps/vtex_connector", s.handleSaveSettings)
	})

	return r
}
