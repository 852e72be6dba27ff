package http

import (
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/monadtools/monad-mcp-go/logger"
	"github.com/monadtools/monad-mcp-go/mcp"
	"github.com/monadtools/monad-mcp-go/mcp/jsonrpc"
	"github.com/monadtools/monad-mcp-go/transport/shared"
)

const (
	headerSessionID       = "Mcp-Session-Id"
	headerProtocolVersion = "MCP-Protocol-Version"

	keepaliveInterval = 30 * time.Second
	maxBodyBytes      = 1 << 20
)

func RegisterRoutes(e *echo.Echo, s *Server) {
	e.GET("/", s.handleInfo)
	e.POST("/mcp", s.handlePost)
	e.GET("/mcp", s.handleStream)
	e.DELETE("/mcp", s.handleDelete)
	e.OPTIONS("/mcp", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})
}

func (s *Server) handleInfo(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"name":            s.config.Name,
		"version":         s.config.Version,
		"description":     s.config.Description,
		"protocolVersion": mcp.ProtocolVersion,
		"endpoint":        "/mcp",
	})
}

// handlePost accepts one JSON-RPC frame per request body.
func (s *Server) handlePost(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBodyBytes))
	if err != nil {
		return c.JSON(http.StatusBadRequest, jsonrpc.NewErrorResponse(nil, int(jsonrpc.ErrParseError), "Failed to read request body", nil))
	}

	requests, prebuilt, _, err := shared.ParseJSONRPCFrame(body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, jsonrpc.NewErrorResponse(nil, int(jsonrpc.ErrParseError), "Parse error", nil))
	}
	if len(prebuilt) > 0 {
		return c.JSON(http.StatusOK, prebuilt[0])
	}
	if len(requests) == 0 {
		return c.NoContent(http.StatusAccepted)
	}
	msg := requests[0]

	session, resp := s.resolveSession(c, msg)
	if resp != nil {
		return c.JSON(http.StatusBadRequest, resp)
	}

	response := s.handleMessage(c, session, msg)
	if response == nil {
		// Notifications get no body.
		return c.NoContent(http.StatusAccepted)
	}
	if session != nil {
		c.Response().Header().Set(headerSessionID, session.ID)
	}
	return c.JSON(http.StatusOK, response)
}

// resolveSession maps the session header to server state. initialize
// creates a session; every other request must present a known one.
func (s *Server) resolveSession(c echo.Context, msg jsonrpc.Request) (*Session, *jsonrpc.Response) {
	if msg.Method == "initialize" {
		return s.sessionManager.CreateSession(), nil
	}

	id := c.Request().Header.Get(headerSessionID)
	if id == "" {
		// Sessionless clients are tolerated for stateless methods.
		return nil, nil
	}
	session, ok := s.sessionManager.GetSession(id)
	if !ok {
		return nil, jsonrpc.NewErrorResponse(msg.ID, int(jsonrpc.ErrInvalidRequest), "Unknown session", nil)
	}
	s.sessionManager.TouchSession(id)
	return session, nil
}

func (s *Server) handleMessage(c echo.Context, session *Session, msg jsonrpc.Request) any {
	ctx := c.Request().Context()

	switch msg.Method {
	case "initialize":
		if session != nil {
			session.Initialized = true
		}
		return shared.BuildInitializeResponse(msg, shared.ServerInfo{Name: s.config.Name, Version: s.config.Version})
	case "notifications/initialized", "notifications/cancelled":
		return nil
	default:
		if msg.IsNotification() {
			return nil
		}
		return shared.DispatchStandardMethod(ctx, msg, s.manager, s.promptRegistry, s.readResource)
	}
}

// handleStream upgrades GET /mcp to a server-sent event stream.
func (s *Server) handleStream(c echo.Context) error {
	id := c.Request().Header.Get(headerSessionID)
	if id == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing " + headerSessionID + " header"})
	}
	session, ok := s.sessionManager.GetSession(id)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Unknown session"})
	}

	stream, err := NewStreamWriter(c.Response())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	session.Stream = stream
	defer func() {
		session.Stream = nil
		stream.Close()
	}()

	logger.Debug("SSE stream opened", "session_id", session.ID)

	ticker := time.NewTicker(keepaliveInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.Request().Context().Done():
			return nil
		case <-stream.Done():
			return nil
		case <-ticker.C:
			if err := stream.SendComment("keepalive"); err != nil {
				return nil
			}
			s.sessionManager.TouchSession(session.ID)
		}
	}
}

func (s *Server) handleDelete(c echo.Context) error {
	id := c.Request().Header.Get(headerSessionID)
	if id == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing " + headerSessionID + " header"})
	}
	if !s.sessionManager.DeleteSession(id) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Unknown session"})
	}
	return c.NoContent(http.StatusNoContent)
}
