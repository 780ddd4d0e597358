// Package handlers provides HTTP handlers for the bridge endpoints.
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"spotbridge/internal/bridge"
	ierrors "spotbridge/internal/errors"
	"spotbridge/internal/transport/transportcore"
)

// ClientRegistrationResponse is the RFC 7591 registration response body,
// including the RFC 7592 registration access token and client
// configuration URI.
type ClientRegistrationResponse struct {
	ClientID                string   `json:"client_id"`
	ClientName              string   `json:"client_name,omitempty"`
	RedirectURIs            []string `json:"redirect_uris"`
	GrantTypes              []string `json:"grant_types"`
	ResponseTypes           []string `json:"response_types"`
	TokenEndpointAuthMethod string   `json:"token_endpoint_auth_method"`
	ClientIDIssuedAt        int64    `json:"client_id_issued_at"`
	RegistrationAccessToken string   `json:"registration_access_token,omitempty"`
	RegistrationClientURI   string   `json:"registration_client_uri,omitempty"`
}

// registerHandler handles dynamic client registration.
type registerHandler struct {
	registry  *bridge.Registry
	issuer    *bridge.RegistrationTokenIssuer
	baseURL   string
	responder transportcore.Responder
}

// NewRegisterHandler creates the POST /register handler.
func NewRegisterHandler(
	registry *bridge.Registry,
	issuer *bridge.RegistrationTokenIssuer,
	baseURL string,
	responder transportcore.Responder,
) http.Handler {
	if registry == nil {
		panic("registry cannot be nil")
	}
	if responder == nil {
		panic("responder cannot be nil")
	}

	return &registerHandler{
		registry:  registry,
		issuer:    issuer,
		baseURL:   strings.TrimRight(baseURL, "/"),
		responder: responder,
	}
}

func (h *registerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req bridge.ClientRegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.OAuthError(w, http.StatusBadRequest,
			ierrors.ErrorCodeInvalidRequest, "Invalid JSON in request body")
		return
	}

	client, err := h.registry.RegisterClient(r.Context(), &req)
	if err != nil {
		if oe := ierrors.OAuthErrorFrom(err); oe != nil {
			h.responder.OAuthError(w, http.StatusBadRequest, oe.ErrorCode, oe.ErrorDescription)
			return
		}
		h.responder.InternalError(w, err)
		return
	}

	resp := ClientRegistrationResponse{
		ClientID:                client.ClientID,
		ClientName:              client.ClientName,
		RedirectURIs:            client.RedirectURIs,
		GrantTypes:              client.GrantTypes,
		ResponseTypes:           client.ResponseTypes,
		TokenEndpointAuthMethod: client.TokenEndpointAuthMethod,
		ClientIDIssuedAt:        client.CreatedAt.Unix(),
	}

	if h.issuer != nil {
		regToken, err := h.issuer.Mint(client.ClientID)
		if err != nil {
			h.responder.InternalError(w, err)
			return
		}
		resp.RegistrationAccessToken = regToken
		resp.RegistrationClientURI = h.baseURL + "/register/" + client.ClientID
	}

	h.responder.JSON(w, http.StatusOK, resp)
}
