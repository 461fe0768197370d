package api

import (
	"encoding/json"
	"net/http"
)

// Response messages returned by the marketplace and settings endpoints
const (
	msgUnauthorized  = "Unauthorized!"
	msgNotCompleted  = "Request could not be completed"
	msgInvalidBody   = "Invalid request body"
	msgInvalidShop   = "Invalid shop"
	msgInvalidOAuth  = "Invalid OAuth callback"
	msgInternalError = "Internal server error"
)

// maxBodyBytes bounds inbound request bodies
const maxBodyBytes = 1 << 20

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Message: message})
}
