// Package main is the entry point for the confcms-mcp server.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jamesprial/confcms-mcp/internal/audit"
	"github.com/jamesprial/confcms-mcp/internal/config"
	"github.com/jamesprial/confcms-mcp/internal/content"
	"github.com/jamesprial/confcms-mcp/internal/graphql"
	internalserver "github.com/jamesprial/confcms-mcp/internal/server"
	"github.com/jamesprial/confcms-mcp/internal/tools"
	"github.com/mark3labs/mcp-go/server"
)

const (
	defaultConfigPath = "/config/config.yaml"
	version           = "1.0.0"
)

func main() {
	cfg := loadConfig()
	config.ApplyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		log.Printf("warning: configuration is incomplete, affected tools will fail:\n%v", err)
	}

	tokenBefore := cfg.Server.AuthToken
	token, err := config.EnsureAuthToken(cfg)
	if err != nil {
		log.Printf("warning: could not generate auth token: %v; running without authentication", err)
	} else if tokenBefore == "" {
		log.Printf("generated auth token (set CONFCMS_MCP_AUTH_TOKEN to persist): %s", token)
	}

	var auditLogger *audit.Logger
	if cfg.Audit.Enabled {
		l, closer, err := audit.OpenFile(cfg.Audit.LogPath)
		if err != nil {
			log.Printf("warning: could not open audit log %q: %v; audit logging disabled", cfg.Audit.LogPath, err)
		} else {
			auditLogger = l
			defer closer.Close()
		}
	}

	backends := graphql.NewBackends(cfg)
	provider := content.NewCMSProvider(
		backends[graphql.BackendDatoCMS],
		backends[graphql.BackendContentHub],
		cfg.Content,
	)
	filters := content.NewFilters(cfg.Visibility)

	mcpServer := server.NewMCPServer(
		"confcms-mcp",
		version,
		server.WithToolCapabilities(false),
	)

	var registrations []tools.Registration
	registrations = append(registrations, content.ContentTools(provider, filters, auditLogger)...)
	registrations = append(registrations, graphql.GraphQLTools(backends, auditLogger)...)
	if err := tools.RegisterAll(mcpServer, registrations); err != nil {
		log.Fatalf("failed to register tools: %v", err)
	}

	router := internalserver.NewRouter(
		server.NewStreamableHTTPServer(mcpServer),
		cfg.Server.AuthToken,
		log.Default(),
	)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("confcms-mcp listening on %s (%d tools, MCP at %s)", addr, len(registrations), internalserver.MCPPath)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	<-stop
	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
	log.Println("server stopped")
}

// loadConfig reads the file named by CONFCMS_CONFIG_PATH, or
// /config/config.yaml, falling back to DefaultConfig when it cannot be read.
func loadConfig() *config.Config {
	path := os.Getenv("CONFCMS_CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		log.Printf("could not load config from %q (%v), using defaults", path, err)
		return config.DefaultConfig()
	}

	log.Printf("loaded config from %q", path)
	return cfg
}
