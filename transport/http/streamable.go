package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
)

// StreamWriter pushes server-sent events to an open GET /mcp response.
type StreamWriter struct {
	writer  http.ResponseWriter
	flusher http.Flusher
	mutex   sync.Mutex
	closed  bool
	done    chan struct{}
}

func NewStreamWriter(w http.ResponseWriter) (*StreamWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("response writer does not support flushing")
	}

	header := w.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	return &StreamWriter{
		writer:  w,
		flusher: flusher,
		done:    make(chan struct{}),
	}, nil
}

// SendEvent writes one SSE data frame carrying the JSON encoding of v.
func (s *StreamWriter) SendEvent(v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.closed {
		return fmt.Errorf("stream closed")
	}
	if _, err := fmt.Fprintf(s.writer, "data: %s\n\n", payload); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// SendComment writes an SSE comment line, used as a keepalive.
func (s *StreamWriter) SendComment(text string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.closed {
		return fmt.Errorf("stream closed")
	}
	if _, err := fmt.Fprintf(s.writer, ": %s\n\n", text); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

func (s *StreamWriter) Close() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.done)
}

// Done is closed when the stream is shut down.
func (s *StreamWriter) Done() <-chan struct{} {
	return s.done
}
