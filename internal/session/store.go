package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Store persists sessions across requests. Load returns nil for an unknown
// ID; Save clears the session's dirty flag on success.
type Store interface {
	Load(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

// redisStore implements Store on Redis. Each session is one JSON value
// under a namespaced key with a sliding TTL.
type redisStore struct {
	client  *redis.Client
	baseTTL time.Duration
	logger  zerolog.Logger
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client, ttl time.Duration, logger zerolog.Logger) Store {
	return &redisStore{
		client:  client,
		baseTTL: ttl,
		logger:  logger.With().Str("component", "session-store").Logger(),
	}
}

func sessionKey(id string) string {
	return "session:" + id
}

func (r *redisStore) Load(ctx context.Context, id string) (*Session, error) {
	data, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var values map[string]json.RawMessage
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session %s: %w", id, err)
	}

	return Restore(id, values), nil
}

func (r *redisStore) Save(ctx context.Context, s *Session) error {
	data, err := json.Marshal(s.Values())
	if err != nil {
		return fmt.Errorf("failed to marshal session %s: %w", s.ID(), err)
	}

	// Jitter spreads expirations so many sessions created together do not
	// all fall out of Redis at once.
	jitter := time.Duration(rand.Intn(5)) * time.Minute
	if err := r.client.Set(ctx, sessionKey(s.ID()), data, r.baseTTL+jitter).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	s.markClean()
	r.logger.Debug().Str("session_id", s.ID()).Msg("session saved")
	return nil
}

func (r *redisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

// memoryStore implements Store in process memory. It backs tests and serves
// as a degraded fallback when Redis is unreachable at startup; sessions then
// do not survive a restart and are not shared across instances.
type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]byte
}

// NewMemoryStore creates an in-memory session store.
func NewMemoryStore() Store {
	return &memoryStore{sessions: make(map[string][]byte)}
}

func (m *memoryStore) Load(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	data, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	var values map[string]json.RawMessage
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session %s: %w", id, err)
	}
	return Restore(id, values), nil
}

func (m *memoryStore) Save(_ context.Context, s *Session) error {
	data, err := json.Marshal(s.Values())
	if err != nil {
		return fmt.Errorf("failed to marshal session %s: %w", s.ID(), err)
	}

	m.mu.Lock()
	m.sessions[s.ID()] = data
	m.mu.Unlock()

	s.markClean()
	return nil
}

func (m *memoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	return nil
}
