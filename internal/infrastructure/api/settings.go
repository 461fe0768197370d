package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"archie-core-vtex-connector/internal/domain"
)

// shopContextMiddleware attaches the validated shop context when the request carries one.
// Handlers decide how to answer requests without it.
func shopContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sc, err := domain.ShopContextFromRequest(r); err == nil {
			r = r.WithContext(domain.WithShopContext(r.Context(), sc))
		}
		next.ServeHTTP(w, r)
	})
}

// authorizedShop returns the shop of an installed-shop request, or "" when there is none
func (s *Server) authorizedShop(r *http.Request) (string, error) {
	sc, ok := domain.ShopContextFrom(r.Context())
	if !ok {
		return "", nil
	}
	authorized, err := s.auth.IsAuthorized(r.Context(), sc.Shop)
	if err != nil || !authorized {
		return "", err
	}
	return sc.Shop, nil
}

// handleGetSettings returns the settings form with masked secrets, or {} when there is nothing to show
func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	shop, err := s.authorizedShop(r)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to check session")
		writeMessage(w, http.StatusInternalServerError, msgInternalError)
		return
	}
	if shop == "" {
		writeJSON(w, http.StatusOK, struct{}{})
		return
	}

	settings, err := s.settings.GetByShop(r.Context(), shop)
	if errors.Is(err, domain.ErrSettingsNotFound) {
		writeJSON(w, http.StatusOK, struct{}{})
		return
	}
	if err != nil {
		s.logger.Error().Err(err).Str("shop", shop).Msg("Failed to load settings")
		writeMessage(w, http.StatusInternalServerError, msgInternalError)
		return
	}
	writeJSON(w, http.StatusOK, settings.MaskedForm())
}

// handleSaveSettings stores the settings form of the authorized shop
func (s *Server) handleSaveSettings(w http.ResponseWriter, r *http.Request) {
	shop, err := s.authorizedShop(r)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to check session")
		writeMessage(w, http.StatusInternalServerError, msgInternalError)
		return
	}
	if shop == "" {
		writeMessage(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	var form domain.SettingsForm
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&form); err != nil {
		writeMessage(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	saved, err := s.settings.SaveForm(r.Context(), shop, form)
	if err != nil {
		s.logger.Error().Err(err).Str("shop", shop).Msg("Failed to save settings")
		writeMessage(w, http.StatusInternalServerError, msgInternalError)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}
