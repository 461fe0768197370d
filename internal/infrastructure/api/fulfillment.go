package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"archie-core-vtex-connector/internal/domain"

	"github.com/go-chi/chi/v5"
)

// fulfillmentFunc serves one marketplace call for an authenticated shop
type fulfillmentFunc func(r *http.Request, settings *domain.ShopSettings) (any, error)

// fulfillmentRoute authenticates the access token, runs fn and records the outcome
// in the activity log. The action recorded is the request path; the token is left out.
func (s *Server) fulfillmentRoute(fn fulfillmentFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		settings, err := s.fulfillment.Authenticate(ctx, r.URL.Query().Get("token"))
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				writeMessage(w, http.StatusUnauthorized, msgUnauthorized)
				return
			}
			s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("Failed to resolve access token")
			writeMessage(w, http.StatusInternalServerError, msgInternalError)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		resp, err := fn(r, settings)
		if err != nil {
			s.logger.Error().Err(err).Str("shop", settings.Shop).Str("path", r.URL.Path).Msg("Marketplace request failed")
			s.activity.Failure(ctx, settings.Shop, r.URL.Path, r.Method, err)
			if errors.Is(err, domain.ErrInvalidPayload) {
				writeMessage(w, http.StatusBadRequest, msgInvalidBody)
				return
			}
			writeMessage(w, http.StatusBadGateway, msgNotCompleted)
			return
		}

		s.activity.Success(ctx, settings.Shop, r.URL.Path, r.Method, resp)
		writeJSON(w, http.StatusOK, resp)
	}
}

func (s *Server) simulate(r *http.Request, settings *domain.ShopSettings) (any, error) {
	var req domain.SimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}
	return s.fulfillment.Simulate(r.Context(), settings, &req)
}

func (s *Server) placeOrder(r *http.Request, settings *domain.ShopSettings) (any, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}
	return s.fulfillment.PlaceOrder(r.Context(), settings, body)
}

func (s *Server) cancelOrder(r *http.Request, settings *domain.ShopSettings) (any, error) {
	req, err := decodeOrderAction(r)
	if err != nil {
		return nil, err
	}
	return s.fulfillment.CancelOrder(r.Context(), settings, chi.URLParam(r, "order_id"), req)
}

func (s *Server) fulfillOrder(r *http.Request, settings *domain.ShopSettings) (any, error) {
	req, err := decodeOrderAction(r)
	if err != nil {
		return nil, err
	}
	return s.fulfillment.FulfillOrder(r.Context(), settings, chi.URLParam(r, "order_id"), req)
}

// decodeOrderAction reads a cancel or fulfill body; an empty body is accepted
func decodeOrderAction(r *http.Request) (domain.OrderActionRequest, error) {
	var req domain.OrderActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return req, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}
	return req, nil
}
