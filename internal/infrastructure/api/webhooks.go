package api

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"archie-core-vtex-connector/internal/domain"
	"archie-core-vtex-connector/internal/infrastructure/metrics"
)

// webhookTimeout bounds the handling of one acknowledged webhook
const webhookTimeout = 2 * time.Minute

// handleWebhook verifies a storefront webhook, acknowledges it and dispatches it in
// the background. Failures are recorded, not retried.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	topic := r.Header.Get("X-Shopify-Topic")

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if !s.shopify.VerifyWebhook(r) {
		s.logger.Warn().Str("topic", topic).Msg("Webhook signature verification failed")
		metrics.Webhooks.WithLabelValues(topic, "unauthorized").Inc()
		writeMessage(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to read webhook payload")
		writeMessage(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	event := &domain.WebhookEvent{
		Topic:   topic,
		Shop:    strings.ToLower(r.Header.Get("X-Shopify-Shop-Domain")),
		Payload: payload,
	}

	s.inflight.Add(1)
	go s.dispatchWebhook(context.WithoutCancel(ctx), event)

	writeJSON(w, http.StatusOK, map[string]string{"received": "true"})
}

func (s *Server) dispatchWebhook(ctx context.Context, event *domain.WebhookEvent) {
	defer s.inflight.Done()
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error().Interface("panic", rec).Str("topic", event.Topic).Str("shop", event.Shop).Msg("Webhook handler panicked")
			metrics.Webhooks.WithLabelValues(event.Topic, metrics.StatusError).Inc()
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, webhookTimeout)
	defer cancel()

	err := s.dispatcher.Dispatch(ctx, event)
	metrics.Webhooks.WithLabelValues(event.Topic, metrics.StatusOf(err)).Inc()
}
