// Package config provides configuration management for the spotbridge
// authorization server. Configuration is loaded from environment variables
// with sensible defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2/spotify"
)

// DefaultSpotifyScopes are the Spotify scopes requested during the provider
// round trip when SPOTIFY_SCOPES is not set.
var DefaultSpotifyScopes = []string{
	"user-read-private",
	"user-read-email",
	"user-library-read",
	"playlist-read-private",
}

// DefaultSpotifyAPIURL is the base URL of the Spotify Web API.
const DefaultSpotifyAPIURL = "https://api.spotify.com/v1"

// Config holds the complete server configuration in a flat structure.
type Config struct {
	// Server settings
	// Addr is the address to bind the HTTP server (e.g., ":8080").
	Addr string

	// BaseURL is the canonical base URL of this server
	// (e.g., "https://bridge.example.com"). It is used as the OAuth issuer,
	// for the discovery document, and as the base of the Spotify callback URL.
	BaseURL string

	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration

	// IdleTimeout is the maximum duration to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration

	// Spotify settings
	// SpotifyClientID is the client id of the Spotify application.
	SpotifyClientID string

	// SpotifyClientSecret is the client secret of the Spotify application.
	// Optional: with PKCE the bridge can operate as a public client.
	SpotifyClientSecret string

	// SpotifyAuthURL is Spotify's authorization endpoint.
	SpotifyAuthURL string

	// SpotifyTokenURL is Spotify's token endpoint.
	SpotifyTokenURL string

	// SpotifyAPIURL is the base URL of the Spotify Web API.
	SpotifyAPIURL string

	// SpotifyScopes are the scopes requested from Spotify.
	SpotifyScopes []string

	// Storage settings
	// RedisAddr is the address of the Redis server. Empty selects the
	// in-memory store.
	RedisAddr string

	// RedisPassword is the optional Redis password.
	RedisPassword string

	// RedisDB is the Redis database number.
	RedisDB int

	// RedisKeyPrefix is prepended to every key (multi-tenancy).
	RedisKeyPrefix string

	// TTL settings
	// ClientTTL is the lifetime of registered client records.
	ClientTTL time.Duration

	// AuthRequestTTL is the lifetime of pending authorization requests.
	AuthRequestTTL time.Duration

	// ProviderStateTTL is the lifetime of the Spotify round-trip state.
	ProviderStateTTL time.Duration

	// AuthCodeTTL is the lifetime of bridge authorization codes.
	AuthCodeTTL time.Duration

	// AccessTokenTTL is the lifetime of bridge access tokens.
	AccessTokenTTL time.Duration

	// RegistrationTokenSecret signs registration access tokens.
	// Generated at startup if unset.
	RegistrationTokenSecret string
}

// CallbackURL returns the Spotify-facing redirect URI for this server.
func (c *Config) CallbackURL() string {
	return strings.TrimRight(c.BaseURL, "/") + "/spotify/callback"
}

// Load reads configuration from environment variables and returns a Config.
// It sets default values for optional fields and validates the configuration.
func Load() (*Config, error) {
	readTimeout, err := parseDurationWithDefault("SERVER_READ_TIMEOUT", "30s")
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := parseDurationWithDefault("SERVER_WRITE_TIMEOUT", "30s")
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_WRITE_TIMEOUT: %w", err)
	}

	idleTimeout, err := parseDurationWithDefault("SERVER_IDLE_TIMEOUT", "120s")
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_IDLE_TIMEOUT: %w", err)
	}

	clientTTL, err := parseDurationWithDefault("CLIENT_TTL", "720h")
	if err != nil {
		return nil, fmt.Errorf("invalid CLIENT_TTL: %w", err)
	}

	authRequestTTL, err := parseDurationWithDefault("AUTH_REQUEST_TTL", "10m")
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_REQUEST_TTL: %w", err)
	}

	providerStateTTL, err := parseDurationWithDefault("PROVIDER_STATE_TTL", "10m")
	if err != nil {
		return nil, fmt.Errorf("invalid PROVIDER_STATE_TTL: %w", err)
	}

	authCodeTTL, err := parseDurationWithDefault("AUTH_CODE_TTL", "10m")
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_CODE_TTL: %w", err)
	}

	accessTokenTTL, err := parseDurationWithDefault("ACCESS_TOKEN_TTL", "1h")
	if err != nil {
		return nil, fmt.Errorf("invalid ACCESS_TOKEN_TTL: %w", err)
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		redisDB, err = strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
	}

	scopes := parseCommaSeparated("SPOTIFY_SCOPES")
	if scopes == nil {
		scopes = DefaultSpotifyScopes
	}

	cfg := &Config{
		// Server settings
		Addr:         getEnvWithDefault("SERVER_ADDR", ":8080"),
		BaseURL:      os.Getenv("SERVER_BASE_URL"),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,

		// Spotify settings
		SpotifyClientID:     os.Getenv("SPOTIFY_CLIENT_ID"),
		SpotifyClientSecret: os.Getenv("SPOTIFY_CLIENT_SECRET"),
		SpotifyAuthURL:      getEnvWithDefault("SPOTIFY_AUTH_URL", spotify.Endpoint.AuthURL),
		SpotifyTokenURL:     getEnvWithDefault("SPOTIFY_TOKEN_URL", spotify.Endpoint.TokenURL),
		SpotifyAPIURL:       getEnvWithDefault("SPOTIFY_API_URL", DefaultSpotifyAPIURL),
		SpotifyScopes:       scopes,

		// Storage settings
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        redisDB,
		RedisKeyPrefix: getEnvWithDefault("REDIS_KEY_PREFIX", "spotbridge:"),

		// TTL settings
		ClientTTL:        clientTTL,
		AuthRequestTTL:   authRequestTTL,
		ProviderStateTTL: providerStateTTL,
		AuthCodeTTL:      authCodeTTL,
		AccessTokenTTL:   accessTokenTTL,

		RegistrationTokenSecret: os.Getenv("REGISTRATION_TOKEN_SECRET"),
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnvWithDefault returns the environment variable value or the default if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseCommaSeparated parses a comma-separated environment variable into a string slice.
// Empty values are filtered out. Returns nil if the environment variable is not set.
func parseCommaSeparated(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	var result []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}

// parseDurationWithDefault parses a duration from an environment variable.
// If the variable is not set, it uses the default value.
// Returns an error if the value is set but cannot be parsed.
func parseDurationWithDefault(key, defaultValue string) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		duration, err := time.ParseDuration(defaultValue)
		if err != nil {
			return 0, fmt.Errorf("invalid default duration %q: %w", defaultValue, err)
		}
		return duration, nil
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", value, err)
	}
	return duration, nil
}
