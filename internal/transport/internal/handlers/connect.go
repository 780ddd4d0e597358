package handlers

import (
	"errors"
	"net/http"

	"spotbridge/internal/bridge"
	"spotbridge/internal/transport/transportcore"
	pkgoauth "spotbridge/pkg/oauth"
)

// connectHandler handles GET /spotify/connect, the consent page's
// continuation link. It starts the Spotify round trip and redirects the
// user-agent to Spotify's authorization endpoint.
type connectHandler struct {
	service   *bridge.Service
	responder transportcore.Responder
}

// NewConnectHandler creates the GET /spotify/connect handler.
func NewConnectHandler(service *bridge.Service, responder transportcore.Responder) http.Handler {
	if service == nil {
		panic("service cannot be nil")
	}
	if responder == nil {
		panic("responder cannot be nil")
	}

	return &connectHandler{
		service:   service,
		responder: responder,
	}
}

func (h *connectHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	if state == "" {
		h.responder.PlainText(w, http.StatusBadRequest, "Missing state parameter")
		return
	}

	authURL, err := h.service.StartProviderAuth(r.Context(), state)
	if err != nil {
		if errors.Is(err, bridge.ErrAuthRequestGone) {
			h.responder.PlainText(w, http.StatusBadRequest, "Invalid or expired authorization request")
			return
		}
		h.responder.PlainText(w, http.StatusInternalServerError, "Failed to generate authorization URL")
		return
	}

	w.Header().Set(pkgoauth.HeaderLocation, authURL)
	w.WriteHeader(http.StatusFound)
}
