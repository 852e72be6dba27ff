package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/monadtools/monad-mcp-go/config"
	"github.com/monadtools/monad-mcp-go/logger"
	"github.com/monadtools/monad-mcp-go/prompts"
	"github.com/monadtools/monad-mcp-go/tools"
	"github.com/monadtools/monad-mcp-go/transport/shared"
)

const (
	sessionTTL      = 10 * time.Minute
	cleanupInterval = 5 * time.Minute
)

// Server serves MCP over streamable HTTP.
type Server struct {
	manager        *tools.Manager
	promptRegistry *prompts.Registry
	sessionManager *SessionManager
	config         *config.Config
	readResource   shared.ResourceReader
	echo           *echo.Echo
}

func NewServer(cfg *config.Config, manager *tools.Manager, promptRegistry *prompts.Registry, readResource shared.ResourceReader) *Server {
	return &Server{
		manager:        manager,
		promptRegistry: promptRegistry,
		sessionManager: NewSessionManager(),
		config:         cfg,
		readResource:   readResource,
		echo:           echo.New(),
	}
}

func (s *Server) Start() error {
	s.setupEcho()
	go s.startCleanupGoroutine()

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	logger.Info("Streamable HTTP server starting to listen", "address", addr)
	return s.echo.Start(addr)
}

func (s *Server) setupEcho() {
	s.echo.HideBanner = true
	s.echo.Use(middleware.Logger())
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, headerSessionID, headerProtocolVersion},
	}))
	RegisterRoutes(s.echo, s)
}

func (s *Server) startCleanupGoroutine() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for range ticker.C {
		s.sessionManager.CleanupSessions(sessionTTL)
	}
}
