package api

import (
	"errors"
	"net/http"

	"archie-core-vtex-connector/internal/domain"
)

// handleInstall redirects the merchant to the storefront authorize screen
func (s *Server) handleInstall(w http.ResponseWriter, r *http.Request) {
	authURL, err := s.auth.BeginInstall(r.Context(), r.URL.Query().Get("shop"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidShop) {
			writeMessage(w, http.StatusBadRequest, msgInvalidShop)
			return
		}
		s.logger.Error().Err(err).Msg("Failed to start install")
		writeMessage(w, http.StatusInternalServerError, msgInternalError)
		return
	}
	http.Redirect(w, r, authURL, http.StatusFound)
}

// handleInstallCallback completes the OAuth exchange
func (s *Server) handleInstallCallback(w http.ResponseWriter, r *http.Request) {
	redirect, err := s.auth.CompleteInstall(r.Context(), r.URL)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidShop):
			writeMessage(w, http.StatusBadRequest, msgInvalidShop)
		case errors.Is(err, domain.ErrInvalidSignature), errors.Is(err, domain.ErrInvalidState):
			s.logger.Warn().Err(err).Msg("Rejected OAuth callback")
			writeMessage(w, http.StatusUnauthorized, msgInvalidOAuth)
		default:
			s.logger.Error().Err(err).Msg("Failed to complete install")
			writeMessage(w, http.StatusInternalServerError, msgInternalError)
		}
		return
	}
	http.Redirect(w, r, redirect, http.StatusFound)
}
