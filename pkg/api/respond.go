package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

// WriteError writes an Error body.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Error{Message: message})
}
