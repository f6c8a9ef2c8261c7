package chat

import (
	"crypto/rand"
	"errors"
	"fmt"
	"sync"

	"github.com/mr-tron/base58"
	"github.com/sirupsen/logrus"
)

var ErrSessionNotFound = errors.New("session not found")

// Registry owns the live sessions of this process. Sessions are in-memory
// only; nothing survives a restart.
type Registry struct {
	pipeline Pipeline
	logger   *logrus.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry(pipeline Pipeline, logger *logrus.Logger) *Registry {
	if logger == nil {
		logger = logrus.New()
	}
	return &Registry{
		pipeline: pipeline,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// Create starts a new session under a fresh ID.
func (r *Registry) Create() (*Session, error) {
	id, err := newSessionID()
	if err != nil {
		return nil, fmt.Errorf("generate session id: %w", err)
	}

	sess := NewSession(id, r.pipeline, r.logger)

	r.mu.Lock()
	r.sessions[id] = sess
	r.mu.Unlock()

	r.logger.WithField("session", id).Debug("session created")
	return sess, nil
}

// Get looks up an existing session.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sess, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Len reports how many sessions are live.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func newSessionID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base58.Encode(buf), nil
}
