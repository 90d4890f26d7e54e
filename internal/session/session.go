package session

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Well-known session keys.
const (
	KeyCart   = "cart"
	KeyUserID = "user_id"
)

// Session is a per-client key/value container identified by an opaque ID.
// Mutations set a dirty flag; nothing is persisted until the caller flushes
// the session through its Store. The dirty flag makes the persistence
// boundary explicit and testable.
type Session struct {
	id     string
	values map[string]json.RawMessage
	dirty  bool
}

// New creates an empty session with a fresh opaque ID.
func New() *Session {
	return &Session{
		id:     uuid.NewString(),
		values: make(map[string]json.RawMessage),
	}
}

// Restore rebuilds a session from its persisted values.
func Restore(id string, values map[string]json.RawMessage) *Session {
	if values == nil {
		values = make(map[string]json.RawMessage)
	}
	return &Session{id: id, values: values}
}

// ID returns the opaque session identifier.
func (s *Session) ID() string {
	return s.id
}

// Get decodes the value stored under key into dest. It reports whether the
// key was present.
func (s *Session) Get(key string, dest any) (bool, error) {
	raw, ok := s.values[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return true, fmt.Errorf("failed to decode session value %q: %w", key, err)
	}
	return true, nil
}

// Set stores a value under key and marks the session dirty.
func (s *Session) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode session value %q: %w", key, err)
	}
	s.values[key] = raw
	s.dirty = true
	return nil
}

// Delete removes a key and marks the session dirty. Absent keys are a no-op.
func (s *Session) Delete(key string) {
	if _, ok := s.values[key]; ok {
		delete(s.values, key)
		s.dirty = true
	}
}

// Dirty reports whether the session holds unpersisted changes.
func (s *Session) Dirty() bool {
	return s.dirty
}

// Values returns the raw value map for persistence.
func (s *Session) Values() map[string]json.RawMessage {
	return s.values
}

// markClean is called by stores after a successful save.
func (s *Session) markClean() {
	s.dirty = false
}

// UserID returns the authenticated user bound to the session, or nil.
func UserID(s *Session) *uuid.UUID {
	var id uuid.UUID
	ok, err := s.Get(KeyUserID, &id)
	if !ok || err != nil {
		return nil
	}
	return &id
}

// SetUserID binds a user to the session; nil unbinds.
func SetUserID(s *Session, id *uuid.UUID) error {
	if id == nil {
		s.Delete(KeyUserID)
		return nil
	}
	return s.Set(KeyUserID, *id)
}
