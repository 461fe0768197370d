package application

import (
	"context"
	"encoding/json"
	"time"

	"archie-core-vtex-connector/internal/domain"
	"archie-core-vtex-connector/internal/ports"

	"github.com/rs/zerolog"
)

// ActivityService appends entries to the activity log and mirrors them to the event stream.
// Recording never fails the caller; problems are logged and dropped.
type ActivityService struct {
	repo      ports.ActivityLogRepository
	publisher ports.ActivityPublisher
	logger    zerolog.Logger
	now       func() time.Time
}

// NewActivityService creates a new activity service. publisher may be nil.
func NewActivityService(repo ports.ActivityLogRepository, publisher ports.ActivityPublisher, logger zerolog.Logger) *ActivityService {
	return &ActivityService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Success records a handled request together with its JSON response
func (s *ActivityService) Success(ctx context.Context, shop, action, method string, response any) {
	body, err := json.Marshal(response)
	if err != nil {
		s.logger.Warn().Err(err).Str("shop", shop).Str("action", action).Msg("Failed to serialize activity response")
		body = []byte("null")
	}
	s.Record(ctx, &domain.ActivityLogEntry{
		Action:   action,
		Request:  method,
		Response: string(body),
		Type:     domain.ActivitySuccess,
		Shop:     shop,
	})
}

// Failure records a request that failed with err
func (s *ActivityService) Failure(ctx context.Context, shop, action, method string, cause error) {
	body, _ := json.Marshal(cause.Error())
	s.Record(ctx, &domain.ActivityLogEntry{
		Action:   action,
		Request:  method,
		Response: string(body),
		Type:     domain.ActivityError,
		Shop:     shop,
	})
}

// Record stores entry and publishes it
func (s *ActivityService) Record(ctx context.Context, entry *domain.ActivityLogEntry) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now().UTC()
	}

	if err := s.repo.Append(ctx, entry); err != nil {
		s.logger.Error().Err(err).Str("shop", entry.Shop).Str("action", entry.Action).Msg("Failed to append activity log entry")
		return
	}

	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, entry); err != nil {
		s.logger.Warn().Err(err).Str("shop", entry.Shop).Str("action", entry.Action).Msg("Failed to publish activity log entry")
	}
}
