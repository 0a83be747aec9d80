// Package chat holds the in-memory conversation. The store is the only
// owner of the message sequence; collaborators hold message ids and come
// back through the store for every mutation.
package chat

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Role identifies who authored a message.
type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// Message is one entry in the conversation. Content only ever grows.
type Message struct {
	ID      string
	Role    Role
	Content string
}

// Store is an append-only, in-memory message sequence. Messages are ordered
// by append time and never deleted within a session.
type Store struct {
	mu       sync.Mutex
	messages []Message
	index    map[string]int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		index: make(map[string]int),
	}
}

// Append adds a message with the given role and content and returns its id.
func (s *Store) Append(role Role, content string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	s.index[id] = len(s.messages)
	s.messages = append(s.messages, Message{ID: id, Role: role, Content: content})
	return id
}

// AppendContent extends the content of an existing message. Content is
// strictly monotonic: there is no way to shrink or rewrite it.
func (s *Store) AppendContent(id, delta string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return fmt.Errorf("chat: append to unknown message %s", id)
	}
	s.messages[i].Content += delta
	return nil
}

// Get returns the message with the given id.
func (s *Store) Get(id string) (Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return Message{}, false
	}
	return s.messages[i], true
}

// Messages returns the conversation in append order. The slice is a copy;
// callers can hold it across renders without racing mutations.
func (s *Store) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of messages.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}
