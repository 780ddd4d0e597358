package handlers

import (
	"net/http"

	"spotbridge/internal/bridge"
	ierrors "spotbridge/internal/errors"
	"spotbridge/internal/transport/transportcore"
)

// tokenHandler handles POST /token, exchanging a bridge authorization code
// for a bridge access token.
type tokenHandler struct {
	service   *bridge.Service
	responder transportcore.Responder
}

// NewTokenHandler creates the POST /token handler.
func NewTokenHandler(service *bridge.Service, responder transportcore.Responder) http.Handler {
	if service == nil {
		panic("service cannot be nil")
	}
	if responder == nil {
		panic("responder cannot be nil")
	}

	return &tokenHandler{
		service:   service,
		responder: responder,
	}
}

func (h *tokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.responder.OAuthError(w, http.StatusBadRequest,
			ierrors.ErrorCodeInvalidRequest, "Malformed form body")
		return
	}

	req := bridge.TokenRequest{
		GrantType:    r.PostFormValue("grant_type"),
		Code:         r.PostFormValue("code"),
		CodeVerifier: r.PostFormValue("code_verifier"),
		ClientID:     r.PostFormValue("client_id"),
		RedirectURI:  r.PostFormValue("redirect_uri"),
	}

	resp, err := h.service.ExchangeCode(r.Context(), req)
	if err != nil {
		if oe := ierrors.OAuthErrorFrom(err); oe != nil {
			h.responder.OAuthError(w, http.StatusBadRequest, oe.ErrorCode, oe.ErrorDescription)
			return
		}
		h.responder.InternalError(w, err)
		return
	}

	h.responder.JSON(w, http.StatusOK, resp)
}
