package application

import (
	"context"
	"errors"
	"net/http"

	"archie-core-vtex-connector/internal/domain"

	"github.com/rs/zerolog"
)

// WebhookHandler processes one family of storefront webhook topics
type WebhookHandler interface {
	CanHandle(topic string) bool
	Handle(ctx context.Context, event *domain.WebhookEvent) error
}

// WebhookDispatcher routes verified webhooks to the first handler that accepts the topic
type WebhookDispatcher struct {
	handlers []WebhookHandler
	activity *ActivityService
	logger   zerolog.Logger
}

// NewWebhookDispatcher creates a dispatcher with no handlers
func NewWebhookDispatcher(activity *ActivityService, logger zerolog.Logger) *WebhookDispatcher {
	return &WebhookDispatcher{
		activity: activity,
		logger:   logger,
	}
}

// RegisterHandler adds h to the dispatch chain
func (d *WebhookDispatcher) RegisterHandler(h WebhookHandler) {
	d.handlers = append(d.handlers, h)
}

// Dispatch runs the handler for event.Topic and records the outcome in the activity log.
// Unknown topics, unknown shops and skipped events are not recorded. The returned error is
// the handler failure, already recorded.
func (d *WebhookDispatcher) Dispatch(ctx context.Context, event *domain.WebhookEvent) error {
	var handler WebhookHandler
	for _, h := range d.handlers {
		if h.CanHandle(event.Topic) {
			handler = h
			break
		}
	}
	if handler == nil {
		d.logger.Debug().Str("topic", event.Topic).Str("shop", event.Shop).Msg("No handler for webhook topic")
		return nil
	}

	action := "/webhooks/" + event.Topic
	err := handler.Handle(ctx, event)
	switch {
	case errors.Is(err, domain.ErrSettingsNotFound):
		d.logger.Debug().Str("topic", event.Topic).Str("shop", event.Shop).Msg("Webhook for unknown shop ignored")
		return nil
	case errors.Is(err, domain.ErrWebhookSkipped):
		d.logger.Debug().Str("topic", event.Topic).Str("shop", event.Shop).Msg("Webhook skipped")
		return nil
	case err != nil:
		d.logger.Error().Err(err).Str("topic", event.Topic).Str("shop", event.Shop).Msg("Webhook handler failed")
		if d.activity != nil {
			d.activity.Failure(ctx, event.Shop, action, http.MethodPost, err)
		}
		return err
	}

	if d.activity != nil {
		d.activity.Success(ctx, event.Shop, action, http.MethodPost, map[string]string{"topic": event.Topic})
	}
	return nil
}
