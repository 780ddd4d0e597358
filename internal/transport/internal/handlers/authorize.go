package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"spotbridge/internal/bridge"
	"spotbridge/internal/transport/transportcore"
)

// consentTemplate renders the consent page returned by /authorize. The
// connect link resumes the flow; the cancel link returns the user to the
// client with an access_denied error.
var consentTemplate = template.Must(template.New("consent").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Connect to Spotify</title>
</head>
<body>
  <h1>Connect your Spotify account</h1>
  <p>{{if .ClientName}}<strong>{{.ClientName}}</strong>{{else}}An application{{end}} is requesting access to your Spotify account.</p>
  <p><a href="{{.ConnectURL}}">Connect to Spotify</a></p>
  <p><a href="{{.CancelURL}}">Cancel</a></p>
</body>
</html>
`))

type consentData struct {
	ClientName string
	ConnectURL string
	CancelURL  string
}

// authorizeHandler handles GET /authorize.
type authorizeHandler struct {
	service   *bridge.Service
	registry  *bridge.Registry
	responder transportcore.Responder
}

// NewAuthorizeHandler creates the GET /authorize handler.
func NewAuthorizeHandler(
	service *bridge.Service,
	registry *bridge.Registry,
	responder transportcore.Responder,
) http.Handler {
	if service == nil {
		panic("service cannot be nil")
	}
	if registry == nil {
		panic("registry cannot be nil")
	}
	if responder == nil {
		panic("responder cannot be nil")
	}

	return &authorizeHandler{
		service:   service,
		registry:  registry,
		responder: responder,
	}
}

func (h *authorizeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := bridge.AuthorizeParams{
		ClientID:            q.Get("client_id"),
		RedirectURI:         q.Get("redirect_uri"),
		State:               q.Get("state"),
		CodeChallenge:       q.Get("code_challenge"),
		CodeChallengeMethod: q.Get("code_challenge_method"),
		ResponseType:        q.Get("response_type"),
	}

	req, err := h.service.Authorize(r.Context(), params)
	if err != nil {
		switch {
		case errors.Is(err, bridge.ErrInvalidParameters):
			h.responder.PlainText(w, http.StatusBadRequest, "Missing or invalid parameters")
		case errors.Is(err, bridge.ErrClientNotFound):
			h.responder.PlainText(w, http.StatusBadRequest, "Invalid client")
		case errors.Is(err, bridge.ErrRedirectURINotRegistered):
			h.responder.PlainText(w, http.StatusBadRequest, "Invalid redirect URI")
		default:
			h.responder.PlainText(w, http.StatusInternalServerError, "Server error")
		}
		return
	}

	clientName := ""
	if client, err := h.registry.GetClient(r.Context(), req.ClientID); err == nil && client != nil {
		clientName = client.ClientName
	}

	data := consentData{
		ClientName: clientName,
		ConnectURL: "/spotify/connect?state=" + url.QueryEscape(req.State),
		CancelURL:  cancelURL(req.RedirectURI, req.State),
	}

	var buf strings.Builder
	if err := consentTemplate.Execute(&buf, data); err != nil {
		h.responder.PlainText(w, http.StatusInternalServerError, "Server error")
		return
	}

	h.responder.HTML(w, http.StatusOK, buf.String())
}

// cancelURL builds the client redirect carrying an access_denied error.
func cancelURL(redirectURI, state string) string {
	parsed, err := url.Parse(redirectURI)
	if err != nil {
		return redirectURI
	}
	q := parsed.Query()
	q.Set("error", "access_denied")
	q.Set("state", state)
	parsed.RawQuery = q.Encode()
	return parsed.String()
}
