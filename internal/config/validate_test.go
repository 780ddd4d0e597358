package config

import (
	"strings"
	"testing"
	"time"
)

// validConfig returns a Config that passes Validate. Tests mutate one field.
func validConfig() *Config {
	return &Config{
		Addr:             ":8080",
		BaseURL:          "https://bridge.example.com",
		ReadTimeout:      30 * time.Second,
		WriteTimeout:     30 * time.Second,
		IdleTimeout:      2 * time.Minute,
		SpotifyClientID:  "spotify-app-id",
		SpotifyAuthURL:   "https://accounts.spotify.com/authorize",
		SpotifyTokenURL:  "https://accounts.spotify.com/api/token",
		SpotifyAPIURL:    "https://api.spotify.com/v1",
		SpotifyScopes:    []string{"user-read-private"},
		ClientTTL:        720 * time.Hour,
		AuthRequestTTL:   10 * time.Minute,
		ProviderStateTTL: 10 * time.Minute,
		AuthCodeTTL:      10 * time.Minute,
		AccessTokenTTL:   time.Hour,
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		mutate      func(cfg *Config)
		errContains string
	}{
		{
			name:   "valid config",
			mutate: func(*Config) {},
		},
		{
			name:        "nil handled separately",
			mutate:      nil,
			errContains: "nil",
		},
		{
			name:        "missing addr",
			mutate:      func(cfg *Config) { cfg.Addr = "" },
			errContains: "SERVER_ADDR",
		},
		{
			name:        "relative base url",
			mutate:      func(cfg *Config) { cfg.BaseURL = "/mcp" },
			errContains: "absolute",
		},
		{
			name:        "zero read timeout",
			mutate:      func(cfg *Config) { cfg.ReadTimeout = 0 },
			errContains: "SERVER_READ_TIMEOUT",
		},
		{
			name:        "negative idle timeout",
			mutate:      func(cfg *Config) { cfg.IdleTimeout = -time.Second },
			errContains: "SERVER_IDLE_TIMEOUT",
		},
		{
			name:        "relative token url",
			mutate:      func(cfg *Config) { cfg.SpotifyTokenURL = "api/token" },
			errContains: "SPOTIFY_TOKEN_URL",
		},
		{
			name:        "empty scope set",
			mutate:      func(cfg *Config) { cfg.SpotifyScopes = nil },
			errContains: "SPOTIFY_SCOPES",
		},
		{
			name:        "zero auth code ttl",
			mutate:      func(cfg *Config) { cfg.AuthCodeTTL = 0 },
			errContains: "AUTH_CODE_TTL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var cfg *Config
			if tt.mutate != nil {
				cfg = validConfig()
				tt.mutate(cfg)
			}

			err := Validate(cfg)
			if tt.errContains == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("Validate() error = %q, want containing %q", err, tt.errContains)
			}
		})
	}
}

func TestIsLocalhost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		host string
		want bool
	}{
		{"localhost", true},
		{"localhost:3000", true},
		{"127.0.0.1", true},
		{"127.0.0.1:8080", true},
		{"example.com", false},
		{"notlocalhost", false},
		{"localhost.example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			t.Parallel()
			if got := isLocalhost(tt.host); got != tt.want {
				t.Errorf("isLocalhost(%q) = %v, want %v", tt.host, got, tt.want)
			}
		})
	}
}
