package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/startailors/tailorshop/internal/shop"
)

// State is what survives between process restarts: the bearer token and the
// user it was issued for.
type State struct {
	Token string    `json:"token"`
	User  shop.User `json:"user"`
}

// Empty reports whether no token is held.
func (s State) Empty() bool {
	return s.Token == ""
}

// Store persists session state.
type Store interface {
	Load(ctx context.Context) (State, error)
	Save(ctx context.Context, state State) error
	Clear(ctx context.Context) error
	// Revoke removes the state only if it still carries token and reports
	// whether it did.
	Revoke(ctx context.Context, token string) (bool, error)
}

// RedisStore keeps the session under a single Redis key so the console and the
// worker share one sign-in.
type RedisStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisStore constructs a RedisStore. A zero ttl keeps the key forever.
func NewRedisStore(client *redis.Client, key string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, key: key, ttl: ttl}
}

// Load returns the stored state, or an empty state when none exists.
func (s *RedisStore) Load(ctx context.Context) (State, error) {
	payload, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return State{}, nil
		}
		return State{}, err
	}
	var state State
	if err := json.Unmarshal(payload, &state); err != nil {
		return State{}, err
	}
	return state, nil
}

// Save writes state with the configured TTL.
func (s *RedisStore) Save(ctx context.Context, state State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key, data, s.ttl).Err()
}

// Clear removes the stored state.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}

// Revoke deletes the key inside a WATCH transaction so a token saved
// concurrently by another process is never removed.
func (s *RedisStore) Revoke(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	removed := false
	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		payload, err := tx.Get(ctx, s.key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return err
		}
		var state State
		if err := json.Unmarshal(payload, &state); err != nil {
			return err
		}
		if state.Token != token {
			return nil
		}
		if _, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, s.key)
			return nil
		}); err != nil {
			return err
		}
		removed = true
		return nil
	}, s.key)
	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	return removed, err
}

// MemoryStore keeps state in process memory.
type MemoryStore struct {
	mu    sync.Mutex
	state State
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(ctx context.Context) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, nil
}

func (m *MemoryStore) Save(ctx context.Context, state State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = State{}
	return nil
}

func (m *MemoryStore) Revoke(ctx context.Context, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if token == "" || m.state.Token != token {
		return false, nil
	}
	m.state = State{}
	return true, nil
}
