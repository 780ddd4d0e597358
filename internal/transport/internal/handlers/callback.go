package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"spotbridge/internal/bridge"
	ierrors "spotbridge/internal/errors"
	"spotbridge/internal/transport/transportcore"
	pkgoauth "spotbridge/pkg/oauth"
)

// callbackHandler handles GET /spotify/callback, where Spotify redirects
// the user-agent after its own consent step.
type callbackHandler struct {
	service   *bridge.Service
	responder transportcore.Responder
}

// NewCallbackHandler creates the GET /spotify/callback handler.
func NewCallbackHandler(service *bridge.Service, responder transportcore.Responder) http.Handler {
	if service == nil {
		panic("service cannot be nil")
	}
	if responder == nil {
		panic("responder cannot be nil")
	}

	return &callbackHandler{
		service:   service,
		responder: responder,
	}
}

func (h *callbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	// Spotify reported an error on its side (e.g. the user denied access).
	// The store is untouched on this path.
	if providerErr := q.Get("error"); providerErr != "" {
		h.responder.PlainText(w, http.StatusBadRequest,
			fmt.Sprintf("spotify authorization error: %s", providerErr))
		return
	}

	code := q.Get("code")
	state := q.Get("state")
	if code == "" || state == "" {
		h.responder.PlainText(w, http.StatusBadRequest, "Missing code or state parameter")
		return
	}

	redirect, err := h.service.CompleteProviderAuth(r.Context(), code, state)
	if err != nil {
		switch {
		case errors.Is(err, bridge.ErrProviderStateGone):
			h.responder.PlainText(w, http.StatusBadRequest, "Invalid or expired state")
		case errors.Is(err, ierrors.ErrUpstream):
			h.responder.PlainText(w, http.StatusInternalServerError,
				fmt.Sprintf("Token exchange failed: %v", err))
		default:
			h.responder.PlainText(w, http.StatusInternalServerError, "Server error")
		}
		return
	}

	w.Header().Set(pkgoauth.HeaderLocation, redirect)
	w.WriteHeader(http.StatusFound)
}
