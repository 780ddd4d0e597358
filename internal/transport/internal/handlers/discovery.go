package handlers

import (
	"net/http"
	"strings"

	"spotbridge/internal/transport/transportcore"
	pkgoauth "spotbridge/pkg/oauth"
)

// DiscoveryDocument is the RFC 8414 authorization server metadata served
// at /.well-known/oauth-authorization-server.
type DiscoveryDocument struct {
	Issuer                            string   `json:"issuer"`
	AuthorizationEndpoint             string   `json:"authorization_endpoint"`
	TokenEndpoint                     string   `json:"token_endpoint"`
	RegistrationEndpoint              string   `json:"registration_endpoint"`
	ResponseTypesSupported            []string `json:"response_types_supported"`
	GrantTypesSupported               []string `json:"grant_types_supported"`
	CodeChallengeMethodsSupported     []string `json:"code_challenge_methods_supported"`
	TokenEndpointAuthMethodsSupported []string `json:"token_endpoint_auth_methods_supported"`
	ScopesSupported                   []string `json:"scopes_supported,omitempty"`
}

// discoveryHandler serves the authorization server metadata document.
type discoveryHandler struct {
	document  DiscoveryDocument
	responder transportcore.Responder
}

// NewDiscoveryHandler creates the discovery document handler for the given
// base URL and supported scopes.
func NewDiscoveryHandler(baseURL string, scopes []string, responder transportcore.Responder) http.Handler {
	if responder == nil {
		panic("responder cannot be nil")
	}

	base := strings.TrimRight(baseURL, "/")
	return &discoveryHandler{
		document: DiscoveryDocument{
			Issuer:                            base,
			AuthorizationEndpoint:             base + "/authorize",
			TokenEndpoint:                     base + "/token",
			RegistrationEndpoint:              base + "/register",
			ResponseTypesSupported:            []string{pkgoauth.ResponseTypeCode},
			GrantTypesSupported:               []string{pkgoauth.GrantTypeAuthorizationCode},
			CodeChallengeMethodsSupported:     []string{pkgoauth.CodeChallengeMethodS256},
			TokenEndpointAuthMethodsSupported: []string{pkgoauth.TokenEndpointAuthNone},
			ScopesSupported:                   scopes,
		},
		responder: responder,
	}
}

func (h *discoveryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.responder.JSON(w, http.StatusOK, h.document)
}
