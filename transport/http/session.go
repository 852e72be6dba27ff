package http

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/monadtools/monad-mcp-go/logger"
)

// Session tracks one streamable HTTP client between requests.
type Session struct {
	ID           string
	CreatedAt    time.Time
	LastActivity time.Time
	Initialized  bool
	Stream       *StreamWriter
}

type SessionManager struct {
	sessions map[string]*Session
	mutex    sync.RWMutex
}

func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[string]*Session)}
}

func (sm *SessionManager) CreateSession() *Session {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	now := time.Now()
	session := &Session{
		ID:           newSessionID(),
		CreatedAt:    now,
		LastActivity: now,
	}
	sm.sessions[session.ID] = session
	logger.Debug("Session created", "session_id", session.ID)
	return session
}

func (sm *SessionManager) GetSession(id string) (*Session, bool) {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()
	session, ok := sm.sessions[id]
	return session, ok
}

func (sm *SessionManager) TouchSession(id string) {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()
	if session, ok := sm.sessions[id]; ok {
		session.LastActivity = time.Now()
	}
}

func (sm *SessionManager) DeleteSession(id string) bool {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()
	session, ok := sm.sessions[id]
	if !ok {
		return false
	}
	if session.Stream != nil {
		session.Stream.Close()
	}
	delete(sm.sessions, id)
	logger.Debug("Session deleted", "session_id", id)
	return true
}

// CleanupSessions drops sessions idle for longer than ttl.
func (sm *SessionManager) CleanupSessions(ttl time.Duration) {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	cutoff := time.Now().Add(-ttl)
	for id, session := range sm.sessions {
		if session.LastActivity.Before(cutoff) {
			if session.Stream != nil {
				session.Stream.Close()
			}
			delete(sm.sessions, id)
			logger.Debug("Session expired", "session_id", id)
		}
	}
}

func newSessionID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return hex.EncodeToString(buf)
}
