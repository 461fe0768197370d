package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry is the dedicated Prometheus registry for the connector
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts inbound requests by method, route pattern and status
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "bridge_http_requests_total", Help: "Total inbound HTTP requests."},
		[]string{"method", "route", "status"},
	)
	// HTTPDuration records inbound request durations in seconds
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "bridge_http_request_duration_seconds", Help: "Inbound HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "route"},
	)

	// Webhooks counts processed storefront webhooks by topic and outcome
	Webhooks = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "bridge_webhooks_total", Help: "Storefront webhooks by topic and status."},
		[]string{"topic", "status"},
	)
	// OutboundCalls counts calls made to the storefront and marketplace APIs
	OutboundCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "bridge_outbound_calls_total", Help: "Outbound platform API calls by platform, operation and status."},
		[]string{"platform", "operation", "status"},
	)
)

var regOnce sync.Once

// RegisterDefault registers the collectors on Registry
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(Webhooks)
		Registry.MustRegister(OutboundCalls)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

// Handler serves Registry in the Prometheus exposition format
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Status labels
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// StatusOf maps an error to a status label
func StatusOf(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusOK
}

// ObserveOutbound counts one outbound call
func ObserveOutbound(platform, operation string, err error) {
	OutboundCalls.WithLabelValues(platform, operation, StatusOf(err)).Inc()
}
