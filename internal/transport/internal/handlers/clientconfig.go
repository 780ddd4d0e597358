package handlers

import (
	"net/http"
	"strings"

	"spotbridge/internal/bridge"
	ierrors "spotbridge/internal/errors"
	"spotbridge/internal/transport/transportcore"
	pkgoauth "spotbridge/pkg/oauth"
)

// clientConfigHandler serves the RFC 7592 client configuration endpoint at
// /register/{client_id}. Requests authenticate with the registration access
// token issued at registration time.
type clientConfigHandler struct {
	registry  *bridge.Registry
	issuer    *bridge.RegistrationTokenIssuer
	responder transportcore.Responder
}

// NewClientConfigHandler creates the GET/DELETE /register/{client_id} handler.
func NewClientConfigHandler(
	registry *bridge.Registry,
	issuer *bridge.RegistrationTokenIssuer,
	responder transportcore.Responder,
) http.Handler {
	if registry == nil {
		panic("registry cannot be nil")
	}
	if issuer == nil {
		panic("issuer cannot be nil")
	}
	if responder == nil {
		panic("responder cannot be nil")
	}

	return &clientConfigHandler{
		registry:  registry,
		issuer:    issuer,
		responder: responder,
	}
}

func (h *clientConfigHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	clientID := r.PathValue("client_id")
	if clientID == "" {
		h.responder.OAuthError(w, http.StatusBadRequest,
			ierrors.ErrorCodeInvalidRequest, "Missing client_id")
		return
	}

	token, err := bearerToken(r)
	if err != nil {
		h.responder.Unauthorized(w, err)
		return
	}
	if err := h.issuer.Validate(token, clientID); err != nil {
		h.responder.Unauthorized(w, err)
		return
	}

	client, err := h.registry.GetClient(r.Context(), clientID)
	if err != nil {
		h.responder.InternalError(w, err)
		return
	}
	if client == nil {
		h.responder.Unauthorized(w, bridge.ErrClientNotFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.responder.JSON(w, http.StatusOK, ClientRegistrationResponse{
			ClientID:                client.ClientID,
			ClientName:              client.ClientName,
			RedirectURIs:            client.RedirectURIs,
			GrantTypes:              client.GrantTypes,
			ResponseTypes:           client.ResponseTypes,
			TokenEndpointAuthMethod: client.TokenEndpointAuthMethod,
			ClientIDIssuedAt:        client.CreatedAt.Unix(),
		})
	case http.MethodDelete:
		if err := h.registry.DeleteClient(r.Context(), clientID); err != nil {
			h.responder.InternalError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		w.Header().Set("Allow", strings.Join([]string{http.MethodGet, http.MethodDelete}, ", "))
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// bearerToken extracts the bearer credential from the Authorization header.
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get(pkgoauth.HeaderAuthorization)
	if header == "" {
		return "", transportcore.ErrMissingToken
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], pkgoauth.BearerToken) {
		return "", transportcore.ErrInvalidToken
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", transportcore.ErrMissingToken
	}
	return token, nil
}
