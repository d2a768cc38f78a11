package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	app_errors "uf-ai/backend/internal/errors"
)

// This file contains shared DTOs (Data Transfer Objects) for API responses
// and helper functions for sending consistent HTTP responses.

// ErrorResponse defines the standard JSON structure for error messages.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse defines a generic success response, typically for operations
// like POST, PUT, DELETE that don't need to return a full resource.
type StatusResponse struct {
	Status string `json:"status"`
}

// respondWithError is the centralized error handling function for the API layer.
// It maps business-layer errors to HTTP status codes and formats a standard
// JSON error response.
func respondWithError(w http.ResponseWriter, err error) {
	statusCode, message := statusFor(err)

	// The original error is logged, a generic message is sent to the client.
	slog.Warn("Responding with error", "status_code", statusCode, "client_message", message, "internal_error", err)

	respondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, app_errors.ErrNotFound):
		return http.StatusNotFound, "The requested resource was not found."
	case errors.Is(err, app_errors.ErrValidation):
		// Validation messages from the service layer are already user-friendly.
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, app_errors.ErrUnauthenticated):
		return http.StatusUnauthorized, "Please sign in first."
	case errors.Is(err, app_errors.ErrPermission):
		return http.StatusForbidden, "You do not have permission to perform this action."
	case errors.Is(err, app_errors.ErrBusy):
		return http.StatusConflict, "A response is still being generated for this chat."
	case errors.Is(err, app_errors.ErrConflict):
		return http.StatusConflict, "A conflict occurred with the current state of the resource."
	case errors.Is(err, app_errors.ErrConfirmationRequired):
		return http.StatusPreconditionRequired, "This action must be confirmed. Repeat it with confirm=true."
	case errors.Is(err, app_errors.ErrUnavailable):
		return http.StatusServiceUnavailable, "This feature is not available with the configured AI provider."
	default:
		// Anything unhandled is an internal error. Details stay in the logs.
		return http.StatusInternalServerError, "An unexpected internal server error occurred."
	}
}

// respondWithJSON is a low-level helper for marshaling a payload to JSON
// and writing it to the http.ResponseWriter with a given status code.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to marshal JSON response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}

// sendStreamError sends a structured error message over a Server-Sent Events (SSE) stream.
func sendStreamError(w http.ResponseWriter, message string) {
	slog.Warn("Sending stream error to client", "message", message)
	if err := writeStreamEvent(w, "error", ErrorResponse{Error: message}); err != nil {
		// Expected if the client closed the connection.
		slog.Warn("Failed to write stream error, client might have disconnected", "error", err)
	}
}

// writeStreamEvent marshals data and writes it to an SSE stream, as a named
// event when name is set. A write error means the client has disconnected.
func writeStreamEvent(w http.ResponseWriter, name string, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		slog.Error("Failed to marshal stream data to JSON", "error", err)
		// The stream is still usable; the problem is the payload.
		return nil
	}

	if name != "" {
		if _, err := fmt.Fprintf(w, "event: %s\n", name); err != nil {
			return fmt.Errorf("failed to write data to stream: %w", err)
		}
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", string(jsonData)); err != nil {
		return fmt.Errorf("failed to write data to stream: %w", err)
	}

	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}

// eventStream opens the SSE response lazily, so a request that fails before
// its first event can still get a regular JSON error.
type eventStream struct {
	w       http.ResponseWriter
	started bool
	gone    bool
}

func (s *eventStream) open() {
	if s.started {
		return
	}
	s.started = true
	h := s.w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	s.w.WriteHeader(http.StatusOK)
}

// send writes one event. After the client goes away further events are dropped.
func (s *eventStream) send(name string, data interface{}) {
	if s.gone {
		return
	}
	s.open()
	if err := writeStreamEvent(s.w, name, data); err != nil {
		slog.Warn("Could not write to stream, client likely disconnected.", "error", err)
		s.gone = true
	}
}

// fail reports err as JSON when nothing was streamed yet, else as an error event.
func (s *eventStream) fail(err error) {
	if !s.started {
		respondWithError(s.w, err)
		return
	}
	_, message := statusFor(err)
	slog.Warn("Stream failed after it started", "error", err)
	if !s.gone {
		sendStreamError(s.w, message)
	}
}
