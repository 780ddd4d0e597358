package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Note: Cannot use t.Parallel() with t.Setenv as it modifies process env
	tests := []struct {
		name        string
		envVars     map[string]string
		wantErr     bool
		errContains string
		validate    func(t *testing.T, cfg *Config)
	}{
		{
			name: "required env vars set",
			envVars: map[string]string{
				"SERVER_BASE_URL":   "https://bridge.example.com",
				"SPOTIFY_CLIENT_ID": "spotify-app-id",
			},
			validate: func(t *testing.T, cfg *Config) {
				if cfg.BaseURL != "https://bridge.example.com" {
					t.Errorf("BaseURL = %q", cfg.BaseURL)
				}
				if cfg.Addr != ":8080" {
					t.Errorf("Addr = %q, want :8080", cfg.Addr)
				}
				if cfg.SpotifyAuthURL != "https://accounts.spotify.com/authorize" {
					t.Errorf("SpotifyAuthURL = %q", cfg.SpotifyAuthURL)
				}
				if cfg.SpotifyTokenURL != "https://accounts.spotify.com/api/token" {
					t.Errorf("SpotifyTokenURL = %q", cfg.SpotifyTokenURL)
				}
				if cfg.AccessTokenTTL != time.Hour {
					t.Errorf("AccessTokenTTL = %v, want 1h", cfg.AccessTokenTTL)
				}
				if cfg.AuthRequestTTL != 10*time.Minute {
					t.Errorf("AuthRequestTTL = %v, want 10m", cfg.AuthRequestTTL)
				}
				if cfg.ClientTTL != 720*time.Hour {
					t.Errorf("ClientTTL = %v, want 720h", cfg.ClientTTL)
				}
				if len(cfg.SpotifyScopes) == 0 {
					t.Error("SpotifyScopes is empty, want defaults")
				}
			},
		},
		{
			name: "missing SERVER_BASE_URL",
			envVars: map[string]string{
				"SPOTIFY_CLIENT_ID": "spotify-app-id",
			},
			wantErr:     true,
			errContains: "SERVER_BASE_URL",
		},
		{
			name: "missing SPOTIFY_CLIENT_ID",
			envVars: map[string]string{
				"SERVER_BASE_URL": "https://bridge.example.com",
			},
			wantErr:     true,
			errContains: "SPOTIFY_CLIENT_ID",
		},
		{
			name: "http base url on non-localhost rejected",
			envVars: map[string]string{
				"SERVER_BASE_URL":   "http://bridge.example.com",
				"SPOTIFY_CLIENT_ID": "spotify-app-id",
			},
			wantErr:     true,
			errContains: "https scheme",
		},
		{
			name: "http base url on localhost allowed",
			envVars: map[string]string{
				"SERVER_BASE_URL":   "http://localhost:8080",
				"SPOTIFY_CLIENT_ID": "spotify-app-id",
			},
			validate: func(t *testing.T, cfg *Config) {
				if cfg.CallbackURL() != "http://localhost:8080/spotify/callback" {
					t.Errorf("CallbackURL() = %q", cfg.CallbackURL())
				}
			},
		},
		{
			name: "invalid duration",
			envVars: map[string]string{
				"SERVER_BASE_URL":   "https://bridge.example.com",
				"SPOTIFY_CLIENT_ID": "spotify-app-id",
				"ACCESS_TOKEN_TTL":  "soon",
			},
			wantErr:     true,
			errContains: "ACCESS_TOKEN_TTL",
		},
		{
			name: "invalid redis db",
			envVars: map[string]string{
				"SERVER_BASE_URL":   "https://bridge.example.com",
				"SPOTIFY_CLIENT_ID": "spotify-app-id",
				"REDIS_DB":          "two",
			},
			wantErr:     true,
			errContains: "REDIS_DB",
		},
		{
			name: "custom scopes and ttls",
			envVars: map[string]string{
				"SERVER_BASE_URL":   "https://bridge.example.com",
				"SPOTIFY_CLIENT_ID": "spotify-app-id",
				"SPOTIFY_SCOPES":    "user-read-private, streaming",
				"ACCESS_TOKEN_TTL":  "30m",
			},
			validate: func(t *testing.T, cfg *Config) {
				if len(cfg.SpotifyScopes) != 2 || cfg.SpotifyScopes[1] != "streaming" {
					t.Errorf("SpotifyScopes = %v", cfg.SpotifyScopes)
				}
				if cfg.AccessTokenTTL != 30*time.Minute {
					t.Errorf("AccessTokenTTL = %v, want 30m", cfg.AccessTokenTTL)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			cfg, err := Load()
			if tt.wantErr {
				if err == nil {
					t.Fatal("Load() error = nil, want error")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("Load() error = %q, want containing %q", err, tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}
