// Package session holds the operator's authenticated session: the bearer
// token kept in persistent storage, re-read before each backend call and torn
// down on logout or when the backend answers 401.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/startailors/tailorshop/internal/shop"
)

// Session is the process-wide session holder injected into the API client.
type Session struct {
	mu     sync.RWMutex
	store  Store
	state  State
	logger *slog.Logger
	clock  func() time.Time
	hooks  []func(context.Context)
}

// New wraps store. Call Init to read any previously stored token.
func New(store Store, logger *slog.Logger) *Session {
	if store == nil {
		store = NewMemoryStore()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{store: store, logger: logger, clock: time.Now}
}

// OnClear registers fn to run after the stored session is removed, whether
// by logout, a rejected token or expiry.
func (s *Session) OnClear(fn func(context.Context)) {
	if s == nil || fn == nil {
		return
	}
	s.mu.Lock()
	s.hooks = append(s.hooks, fn)
	s.mu.Unlock()
}

// Init loads the stored token. Tokens whose expiry claim has passed are
// discarded and removed from the store.
func (s *Session) Init(ctx context.Context) error {
	state, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	if !state.Empty() {
		if claims, err := ParseClaims(state.Token); err == nil && claims.Expired(s.clock()) {
			s.logger.Info("stored session expired", slog.String("user", state.User.Username))
			if err := s.Revoke(ctx, state.Token); err != nil {
				return err
			}
			state = State{}
		}
	}
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
	return nil
}

// Establish stores a freshly issued token. When user is empty it is taken from
// the token claims.
func (s *Session) Establish(ctx context.Context, token string, user shop.User) error {
	if user == (shop.User{}) {
		if claims, err := ParseClaims(token); err == nil {
			user = claims.User()
		}
	}
	state := State{Token: token, User: user}
	if err := s.store.Save(ctx, state); err != nil {
		return err
	}
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
	return nil
}

// Sync re-reads the store so a sign-in or sign-out made by another process
// sharing it takes effect here, and returns the token to send. When the store
// cannot be read the in-memory token is kept.
func (s *Session) Sync(ctx context.Context) string {
	if s == nil {
		return ""
	}
	if err := s.Init(ctx); err != nil {
		s.logger.Warn("reload stored session", slog.Any("error", err))
	}
	return s.Token()
}

// Clear tears the session down in memory and in the store. The in-memory state
// is dropped even when the store fails.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.state = State{}
	s.mu.Unlock()
	if err := s.store.Clear(ctx); err != nil {
		s.logger.Warn("clear stored session", slog.Any("error", err))
		return err
	}
	s.notify(ctx)
	return nil
}

// Revoke signs token out. The store is only cleared while it still holds
// token, so a newer sign-in written by another process survives.
func (s *Session) Revoke(ctx context.Context, token string) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	if s.state.Token == token {
		s.state = State{}
	}
	s.mu.Unlock()
	removed, err := s.store.Revoke(ctx, token)
	if err != nil {
		s.logger.Warn("revoke stored session", slog.Any("error", err))
		return err
	}
	if removed {
		s.notify(ctx)
	}
	return nil
}

func (s *Session) notify(ctx context.Context) {
	s.mu.RLock()
	hooks := append([]func(context.Context){}, s.hooks...)
	s.mu.RUnlock()
	for _, fn := range hooks {
		fn(ctx)
	}
}

// Token returns the bearer token, or "" when signed out.
func (s *Session) Token() string {
	if s == nil {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

// User returns the signed-in user.
func (s *Session) User() (shop.User, bool) {
	if s == nil {
		return shop.User{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.User, !s.state.Empty()
}

// Authenticated reports whether a token is held.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}
