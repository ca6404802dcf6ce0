package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

const (
	corsAllowOrigin  = "*"
	corsAllowMethods = "POST, OPTIONS"
	corsAllowHeaders = "Content-Type"
)

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, status int, data interface{}, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes an error response in JSON format
func WriteError(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	WriteJSON(w, status, map[string]string{"error": message}, logger)
}

// Options answers CORS preflight requests for the JSON API with an empty 200
func Options(w http.ResponseWriter, r *http.Request) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", corsAllowOrigin)
	h.Set("Access-Control-Allow-Methods", corsAllowMethods)
	h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
	w.WriteHeader(http.StatusOK)
}

// MethodNotAllowed returns a handler that answers 405 with a JSON error body
func MethodNotAllowed(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed", logger)
	}
}

// NotFound returns a handler that answers 404 with a JSON error body
func NotFound(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusNotFound, "Not found", logger)
	}
}
