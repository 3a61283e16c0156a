// Package session holds per-conversation state: the immutable profile, the
// target job description, the ordered chat history and the last result
// produced by each advisor.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/manjuraavi/linkedin-career-coach/internal/profile"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

var ErrNotFound = errors.New("session not found")

// Message is one chat history entry. History is append-only and insertion
// order is significant; role alternation is not enforced (error notices may
// produce consecutive assistant entries).
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session is the unit of persistence. Results holds the raw JSON of the last
// result per advisor type.
type Session struct {
	ID             string                     `json:"id"`
	Profile        *profile.Record            `json:"profile"`
	JobDescription string                     `json:"job_description"`
	History        []Message                  `json:"history"`
	Results        map[string]json.RawMessage `json:"results,omitempty"`
	CreatedAt      time.Time                  `json:"created_at"`
}

// Store is the session persistence boundary. Implementations must be safe for
// concurrent use; turn-level serialization is provided separately by Locker.
type Store interface {
	Create(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	AppendMessage(ctx context.Context, id string, msg Message) error
	PutResult(ctx context.Context, id, advisorType string, result json.RawMessage) error
}

// Locker serializes turns per session: two concurrent turns for one session id
// must never interleave. Lock blocks until the session is free and returns the
// unlock function.
type Locker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewLocker() *Locker {
	return &Locker{locks: make(map[string]*sync.Mutex)}
}

func (l *Locker) Lock(id string) (unlock func()) {
	l.mu.Lock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
