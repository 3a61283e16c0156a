package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore keeps sessions in process memory. It satisfies the durability
// requirements of the design (process lifetime) and is the default backend.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

func (s *MemoryStore) Create(_ context.Context, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[sess.ID]; exists {
		return fmt.Errorf("session %s already exists", sess.ID)
	}

	s.sessions[sess.ID] = cloneSession(sess)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return cloneSession(sess), nil
}

func (s *MemoryStore) AppendMessage(_ context.Context, id string, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	sess.History = append(sess.History, msg)
	return nil
}

func (s *MemoryStore) PutResult(_ context.Context, id, advisorType string, result json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	if sess.Results == nil {
		sess.Results = make(map[string]json.RawMessage)
	}
	sess.Results[advisorType] = append(json.RawMessage(nil), result...)
	return nil
}

// cloneSession copies the mutable parts so callers cannot alias store state.
func cloneSession(sess *Session) *Session {
	clone := *sess
	clone.History = append([]Message(nil), sess.History...)

	if sess.Results != nil {
		clone.Results = make(map[string]json.RawMessage, len(sess.Results))
		for k, v := range sess.Results {
			clone.Results[k] = append(json.RawMessage(nil), v...)
		}
	}

	return &clone
}
