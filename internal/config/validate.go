package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks that the configuration is valid and complete.
// It returns an error if required fields are missing or values are invalid.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if err := validateServer(cfg); err != nil {
		return fmt.Errorf("invalid server config: %w", err)
	}

	if err := validateSpotify(cfg); err != nil {
		return fmt.Errorf("invalid spotify config: %w", err)
	}

	if err := validateTTLs(cfg); err != nil {
		return fmt.Errorf("invalid ttl config: %w", err)
	}

	return nil
}

// isLocalhost returns true if the host is localhost or a loopback address.
// It handles bare hostnames and host:port combinations.
func isLocalhost(host string) bool {
	if host == "localhost" || host == "127.0.0.1" {
		return true
	}
	if strings.HasPrefix(host, "localhost:") || strings.HasPrefix(host, "127.0.0.1:") {
		return true
	}
	return false
}

// validateServer validates the server-related fields.
func validateServer(cfg *Config) error {
	if cfg.Addr == "" {
		return fmt.Errorf("SERVER_ADDR is required")
	}

	if cfg.BaseURL == "" {
		return fmt.Errorf("SERVER_BASE_URL is required")
	}

	parsedURL, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid SERVER_BASE_URL: %w", err)
	}

	if !parsedURL.IsAbs() {
		return fmt.Errorf("SERVER_BASE_URL must be an absolute URL")
	}

	if parsedURL.Scheme != "https" && parsedURL.Scheme != "http" {
		return fmt.Errorf("SERVER_BASE_URL must use http or https scheme")
	}

	// If using HTTP, must be localhost
	if parsedURL.Scheme == "http" && !isLocalhost(parsedURL.Host) {
		return fmt.Errorf("SERVER_BASE_URL must use https scheme for non-localhost hosts")
	}

	if cfg.ReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}

	if cfg.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}

	// 0 is allowed meaning no timeout
	if cfg.IdleTimeout < 0 {
		return fmt.Errorf("SERVER_IDLE_TIMEOUT must be non-negative")
	}

	return nil
}

// validateSpotify validates the Spotify-related fields.
func validateSpotify(cfg *Config) error {
	if cfg.SpotifyClientID == "" {
		return fmt.Errorf("SPOTIFY_CLIENT_ID is required")
	}

	for _, field := range []struct {
		name  string
		value string
	}{
		{"SPOTIFY_AUTH_URL", cfg.SpotifyAuthURL},
		{"SPOTIFY_TOKEN_URL", cfg.SpotifyTokenURL},
		{"SPOTIFY_API_URL", cfg.SpotifyAPIURL},
	} {
		parsedURL, err := url.Parse(field.value)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", field.name, err)
		}
		if !parsedURL.IsAbs() {
			return fmt.Errorf("%s must be an absolute URL", field.name)
		}
	}

	if len(cfg.SpotifyScopes) == 0 {
		return fmt.Errorf("SPOTIFY_SCOPES must contain at least one scope")
	}

	return nil
}

// validateTTLs validates the record lifetime fields.
func validateTTLs(cfg *Config) error {
	for _, field := range []struct {
		name  string
		value int64
	}{
		{"CLIENT_TTL", int64(cfg.ClientTTL)},
		{"AUTH_REQUEST_TTL", int64(cfg.AuthRequestTTL)},
		{"PROVIDER_STATE_TTL", int64(cfg.ProviderStateTTL)},
		{"AUTH_CODE_TTL", int64(cfg.AuthCodeTTL)},
		{"ACCESS_TOKEN_TTL", int64(cfg.AccessTokenTTL)},
	} {
		if field.value <= 0 {
			return fmt.Errorf("%s must be positive", field.name)
		}
	}

	return nil
}
