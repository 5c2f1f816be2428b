// internal/pkg/flash/flash.go
package flash

import (
	"context"
	"sync"
)

// Status marks a message as a success or failure notice
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusFailure Status = "FAILURE"
)

// Message is a one-shot status line shown on the next page view
type Message struct {
	Message string `json:"message"`
	Status  Status `json:"status"`
}

// Success builds a success message
func Success(text string) Message {
	return Message{Message: text, Status: StatusSuccess}
}

// Failure builds a failure message
func Failure(text string) Message {
	return Message{Message: text, Status: StatusFailure}
}

// Store keeps at most one pending message per session
type Store interface {
	Put(ctx context.Context, sessionID string, msg Message) error
	// Pop returns and deletes the pending message; nil when there is none.
	Pop(ctx context.Context, sessionID string) (*Message, error)
}

// MemoryStore is a process-local Store
type MemoryStore struct {
	mu       sync.Mutex
	messages map[string]Message
}

// NewMemoryStore creates an empty in-process store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{messages: map[string]Message{}}
}

func (s *MemoryStore) Put(_ context.Context, sessionID string, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[sessionID] = msg
	return nil
}

func (s *MemoryStore) Pop(_ context.Context, sessionID string) (*Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg, ok := s.messages[sessionID]
	if !ok {
		return nil, nil
	}
	delete(s.messages, sessionID)
	return &msg, nil
}
