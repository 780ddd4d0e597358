package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"spotbridge/internal/transport/transportcore"
	pkgoauth "spotbridge/pkg/oauth"
)

// responder implements transportcore.Responder.
type responder struct {
	logger *slog.Logger
}

// NewResponder creates a responder. If logger is nil, the default slog
// logger is used.
func NewResponder(logger *slog.Logger) transportcore.Responder {
	if logger == nil {
		logger = slog.Default()
	}
	return &responder{logger: logger}
}

// JSON writes a JSON response body with the given status.
func (r *responder) JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(pkgoauth.HeaderContentType, pkgoauth.ContentTypeJSON)
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		r.logger.Error("failed to encode response", "error", err)
	}
}

// OAuthError writes an RFC 6749 JSON error body.
func (r *responder) OAuthError(w http.ResponseWriter, status int, errorCode, description string) {
	r.logger.Warn("oauth error response",
		"status", status,
		"error", errorCode,
		"description", description,
	)

	r.JSON(w, status, pkgoauth.ErrorResponse{
		Error:            errorCode,
		ErrorDescription: description,
	})
}

// PlainText writes a plain-text response body. Browser-navigated endpoints
// use this instead of JSON.
func (r *responder) PlainText(w http.ResponseWriter, status int, message string) {
	w.Header().Set(pkgoauth.HeaderContentType, pkgoauth.ContentTypeText)
	w.WriteHeader(status)

	if _, err := fmt.Fprintln(w, message); err != nil {
		r.logger.Error("failed to write response", "error", err)
	}
}

// HTML writes an HTML response body.
func (r *responder) HTML(w http.ResponseWriter, status int, body string) {
	w.Header().Set(pkgoauth.HeaderContentType, pkgoauth.ContentTypeHTML)
	w.WriteHeader(status)

	if _, err := fmt.Fprint(w, body); err != nil {
		r.logger.Error("failed to write response", "error", err)
	}
}

// Unauthorized writes a 401 with a WWW-Authenticate Bearer challenge per
// RFC 6750 Section 3.
func (r *responder) Unauthorized(w http.ResponseWriter, err error) {
	r.logger.Warn("unauthorized request", "error", err)

	w.Header().Set(pkgoauth.HeaderWWWAuthenticate,
		fmt.Sprintf(`Bearer error="%s"`, "invalid_token"))
	r.JSON(w, http.StatusUnauthorized, pkgoauth.ErrorResponse{
		Error:            "invalid_token",
		ErrorDescription: "Authentication required",
	})
}

// InternalError writes a 500 JSON error body. Store details never reach
// the client.
func (r *responder) InternalError(w http.ResponseWriter, err error) {
	r.logger.Error("internal server error", "error", err)

	r.JSON(w, http.StatusInternalServerError, pkgoauth.ErrorResponse{
		Error:            "server_error",
		ErrorDescription: "An internal server error occurred",
	})
}
