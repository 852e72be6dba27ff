package stdio

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/monadtools/monad-mcp-go/logger"
	"github.com/monadtools/monad-mcp-go/mcp/jsonrpc"
	"github.com/monadtools/monad-mcp-go/prompts"
	"github.com/monadtools/monad-mcp-go/tools"
	"github.com/monadtools/monad-mcp-go/transport/shared"
)

const maxFrameBytes = 1 << 20

// Server handles MCP communication over stdio, one line-delimited
// JSON-RPC frame per request.
type Server struct {
	manager        *tools.Manager
	promptRegistry *prompts.Registry
	info           shared.ServerInfo
	readResource   shared.ResourceReader
	in             io.Reader
	out            io.Writer
}

// NewServer creates a new stdio server bound to the process streams.
func NewServer(manager *tools.Manager, promptRegistry *prompts.Registry, info shared.ServerInfo, readResource shared.ResourceReader) *Server {
	return &Server{
		manager:        manager,
		promptRegistry: promptRegistry,
		info:           info,
		readResource:   readResource,
		in:             os.Stdin,
		out:            os.Stdout,
	}
}

// Start runs the serve loop until the input channel closes. Requests are
// processed one at a time to completion; a malformed or oversized frame
// produces an error response and the loop keeps going. Only channel-level
// failures (read or write errors) terminate the loop.
func (s *Server) Start() error {
	reader := bufio.NewReaderSize(s.in, 64*1024)
	encoder := json.NewEncoder(s.out)

	logger.Debug("Stdio server started and waiting for messages")

	for {
		frame, err := readFrame(reader)
		if err == io.EOF {
			logger.Debug("Stdio EOF received, terminating server")
			return nil
		}
		if err != nil && err != errFrameTooLarge {
			return fmt.Errorf("failed to read request: %w", err)
		}

		var responses []any
		if err == errFrameTooLarge {
			logger.Warn("Dropping oversized frame", "limit_bytes", maxFrameBytes)
			responses = []any{jsonrpc.NewErrorResponse(nil, int(jsonrpc.ErrParseError), "Parse error", nil)}
		} else {
			if len(bytes.TrimSpace(frame)) == 0 {
				continue
			}
			responses = s.handleFrame(context.Background(), frame)
		}

		for _, response := range responses {
			if err := encoder.Encode(response); err != nil {
				return fmt.Errorf("failed to write response: %w", err)
			}
		}
	}
}

var errFrameTooLarge = fmt.Errorf("frame exceeds %d bytes", maxFrameBytes)

// readFrame reads one newline-delimited frame. An oversized line is
// drained to its newline and reported as errFrameTooLarge so the caller
// can answer it without losing the stream position.
func readFrame(reader *bufio.Reader) ([]byte, error) {
	var frame []byte
	for {
		chunk, err := reader.ReadSlice('\n')
		frame = append(frame, chunk...)

		if err == bufio.ErrBufferFull {
			if len(frame) > maxFrameBytes {
				return nil, drainLine(reader)
			}
			continue
		}
		if err == io.EOF && len(frame) > 0 {
			err = nil
		}
		if err != nil {
			return nil, err
		}
		if len(frame) > maxFrameBytes {
			return nil, errFrameTooLarge
		}
		return bytes.TrimSuffix(frame, []byte("\n")), nil
	}
}

// drainLine discards input up to the next newline, then reports the
// oversized frame. A read failure while draining wins over the frame
// error since the channel itself is broken.
func drainLine(reader *bufio.Reader) error {
	for {
		_, err := reader.ReadSlice('\n')
		if err == bufio.ErrBufferFull {
			continue
		}
		if err != nil && err != io.EOF {
			return err
		}
		return errFrameTooLarge
	}
}

func (s *Server) handleFrame(ctx context.Context, frame []byte) []any {
	requests, responses, _, err := shared.ParseJSONRPCFrame(frame)
	if err != nil {
		return []any{jsonrpc.NewErrorResponse(nil, int(jsonrpc.ErrParseError), "Parse error", nil)}
	}

	for _, msg := range requests {
		logger.Debug("Stdio message received", "method", msg.Method, "id", msg.ID)
		response := s.handleMessage(ctx, msg)
		if response == nil || msg.IsNotification() {
			continue
		}
		responses = append(responses, response)
	}
	return responses
}

func (s *Server) handleMessage(ctx context.Context, msg jsonrpc.Request) any {
	switch msg.Method {
	case "initialize":
		return shared.BuildInitializeResponse(msg, s.info)
	case "notifications/initialized", "notifications/cancelled":
		// One-way notifications.
		return nil
	default:
		return shared.DispatchStandardMethod(ctx, msg, s.manager, s.promptRegistry, s.readResource)
	}
}
