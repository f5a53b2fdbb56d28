package server

import (
	"encoding/json"
	"net/http"

	"github.com/pfrederiksen/sheet-events/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

// respondJSON writes v as JSON with the given status
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to write response", logger.Fields{"status": status}, err)
	}
}

// respondError writes a JSON error body
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}
