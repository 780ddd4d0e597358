// Package main provides the entry point for the spotbridge authorization
// server. It wires together all components using dependency injection and
// manages the server lifecycle with graceful shutdown.
package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spotbridge/internal/bridge"
	"spotbridge/internal/config"
	"spotbridge/internal/mcp"
	"spotbridge/internal/spotify"
	"spotbridge/internal/storage"
	"spotbridge/internal/transport"
)

func main() {
	// Set up structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	slog.Info("server configuration loaded",
		"addr", cfg.Addr,
		"base_url", cfg.BaseURL,
		"redis", cfg.RedisAddr != "",
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Select the storage backend: Redis when configured, in-memory otherwise.
	var store storage.Store
	if cfg.RedisAddr != "" {
		redisStore, err := storage.NewRedisStore(ctx, storage.RedisConfig{
			Addr:      cfg.RedisAddr,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			KeyPrefix: cfg.RedisKeyPrefix,
		})
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer func() {
			if err := redisStore.Close(); err != nil {
				slog.Warn("failed to close redis store", "error", err)
			}
		}()
		store = redisStore
		slog.Info("storage initialized", "backend", "redis", "addr", cfg.RedisAddr)
	} else {
		memStore := storage.NewMemoryStore()
		defer memStore.Close()
		store = memStore
		slog.Info("storage initialized", "backend", "memory")
	}

	// Wire the Spotify OAuth client.
	authClient, err := spotify.NewAuthClient(spotify.AuthConfig{
		ClientID:     cfg.SpotifyClientID,
		ClientSecret: cfg.SpotifyClientSecret,
		AuthURL:      cfg.SpotifyAuthURL,
		TokenURL:     cfg.SpotifyTokenURL,
		RedirectURI:  cfg.CallbackURL(),
		Scopes:       cfg.SpotifyScopes,
	})
	if err != nil {
		log.Fatalf("failed to create spotify client: %v", err)
	}

	// Wire the bridge core.
	registry := bridge.NewRegistry(bridge.NewClientStore(store, cfg.ClientTTL))
	service := bridge.NewService(
		registry,
		bridge.NewAuthRequestStore(store, cfg.AuthRequestTTL),
		bridge.NewProviderStateStore(store, cfg.ProviderStateTTL),
		bridge.NewAuthCodeStore(store, cfg.AuthCodeTTL),
		bridge.NewAccessTokenStore(store, cfg.AccessTokenTTL),
		authClient,
		cfg.SpotifyScopes,
		logger,
	)

	secret := cfg.RegistrationTokenSecret
	if secret == "" {
		secret, err = generateSecret()
		if err != nil {
			log.Fatalf("failed to generate registration token secret: %v", err)
		}
		slog.Warn("REGISTRATION_TOKEN_SECRET not set, generated an ephemeral secret; " +
			"registration access tokens will not survive a restart")
	}
	issuer, err := bridge.NewRegistrationTokenIssuer(secret)
	if err != nil {
		log.Fatalf("failed to create registration token issuer: %v", err)
	}

	slog.Info("bridge services initialized",
		"callback_url", cfg.CallbackURL(),
		"scopes", cfg.SpotifyScopes,
	)

	// Wire MCP components
	mcpCfg := &mcp.Config{
		ServerName:    "spotbridge",
		ServerVersion: "1.0.0",
	}

	mcpHandler, toolRegistry, err := mcp.NewMCPServices(mcpCfg)
	if err != nil {
		log.Fatalf("failed to create mcp services: %v", err)
	}
	_ = toolRegistry // Available for registering custom tools

	slog.Info("mcp services initialized",
		"server_name", mcpCfg.ServerName,
		"server_version", mcpCfg.ServerVersion,
	)

	// Wire transport layer
	transportCfg := &transport.Config{
		ServerConfig:            cfg,
		Service:                 service,
		Registry:                registry,
		RegistrationTokenIssuer: issuer,
		MCPHandler:              mcpHandler,
		Logger:                  logger,
	}

	server, router, err := transport.NewTransportServices(transportCfg)
	if err != nil {
		log.Fatalf("failed to create transport services: %v", err)
	}
	_ = router // Router is used internally by server

	// Start server in background goroutine
	serverErrCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.Addr)
		if err := server.Start(); err != nil {
			serverErrCh <- err
		}
	}()

	// Wait for shutdown signal or server error
	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received, stopping server gracefully...")
	case err := <-serverErrCh:
		slog.Error("server error", "error", err)
		stop()
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped successfully")
}

// generateSecret returns a random 256-bit secret for signing registration
// access tokens when none is configured.
func generateSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
