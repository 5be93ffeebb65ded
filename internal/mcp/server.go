// Package mcp exposes the declaration index over the Model Context Protocol.
package mcp

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"declscope/internal/config"
	"declscope/internal/index"
)

// serverName and serverVersion identify this server to MCP hosts.
const (
	serverName    = "declscope"
	serverVersion = "1.0.0"
)

// Server manages the MCP server lifecycle around one index engine.
type Server struct {
	cfg    *config.Config
	engine *index.Engine
	cache  *resultCache
	log    zerolog.Logger
	mcp    *server.MCPServer
}

// NewServer creates an MCP server serving queries from the given engine.
func NewServer(cfg *config.Config, engine *index.Engine, log zerolog.Logger) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if engine == nil {
		return nil, fmt.Errorf("index engine is required")
	}

	cache, err := newResultCache()
	if err != nil {
		return nil, err
	}

	mcpServer := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
	)

	s := &Server{
		cfg:    cfg,
		engine: engine,
		cache:  cache,
		log:    log,
		mcp:    mcpServer,
	}
	s.registerTools()
	return s, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown.
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("root", s.cfg.Source.Root).Msg("starting MCP server on stdio")
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
		}
	}()

	select {
	case <-sigCh:
		s.log.Info().Msg("received shutdown signal, stopping")
		return nil
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases server resources.
func (s *Server) Close() error {
	if s.cache != nil {
		s.cache.close()
	}
	return nil
}
