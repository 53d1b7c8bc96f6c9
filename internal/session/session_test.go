package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/startailors/tailorshop/internal/shop"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, "tailorshop:session", time.Hour), mr
}

func signToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := Claims{
		UserID:   "u1",
		Username: "admin",
		Role:     "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return token
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	state, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, state.Empty())

	want := State{Token: "tok", User: shop.User{ID: "u1", Username: "admin", Role: "admin"}}
	require.NoError(t, store.Save(ctx, want))
	assert.Equal(t, time.Hour, mr.TTL("tailorshop:session"))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, store.Clear(ctx))
	assert.False(t, mr.Exists("tailorshop:session"))
}

func TestInitRestoresStoredToken(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()
	token := signToken(t, time.Now().Add(time.Hour))
	require.NoError(t, store.Save(ctx, State{Token: token, User: shop.User{ID: "u1", Username: "admin"}}))

	sess := New(store, nil)
	require.NoError(t, sess.Init(ctx))
	assert.Equal(t, token, sess.Token())
	user, ok := sess.User()
	require.True(t, ok)
	assert.Equal(t, "admin", user.Username)
}

func TestInitDropsExpiredToken(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, State{Token: signToken(t, time.Now().Add(-time.Minute))}))

	sess := New(store, nil)
	require.NoError(t, sess.Init(ctx))
	assert.False(t, sess.Authenticated())
	assert.False(t, mr.Exists("tailorshop:session"))
}

func TestEstablishFillsUserFromClaims(t *testing.T) {
	sess := New(nil, nil)
	token := signToken(t, time.Now().Add(time.Hour))
	require.NoError(t, sess.Establish(context.Background(), token, shop.User{}))

	user, ok := sess.User()
	require.True(t, ok)
	assert.Equal(t, shop.User{ID: "u1", Username: "admin", Role: "admin"}, user)
}

func TestClearTearsDown(t *testing.T) {
	store := NewMemoryStore()
	sess := New(store, nil)
	ctx := context.Background()
	require.NoError(t, sess.Establish(ctx, "opaque", shop.User{Username: "admin"}))
	require.True(t, sess.Authenticated())

	require.NoError(t, sess.Clear(ctx))
	assert.False(t, sess.Authenticated())
	state, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, state.Empty())
}

func TestNilSessionIsSignedOut(t *testing.T) {
	var sess *Session
	assert.Empty(t, sess.Token())
	_, ok := sess.User()
	assert.False(t, ok)
	assert.False(t, sess.Authenticated())
}

func TestParseClaimsRejectsGarbage(t *testing.T) {
	_, err := ParseClaims("")
	require.Error(t, err)
	_, err = ParseClaims("not-a-jwt")
	require.Error(t, err)
}

func TestSharedStorePicksUpLaterSignIn(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	worker := New(store, nil)
	require.NoError(t, worker.Init(ctx))
	assert.Empty(t, worker.Token())

	console := New(store, nil)
	require.NoError(t, console.Establish(ctx, "fresh-token", shop.User{Username: "admin"}))

	assert.Equal(t, "fresh-token", worker.Sync(ctx))
	user, ok := worker.User()
	require.True(t, ok)
	assert.Equal(t, "admin", user.Username)

	require.NoError(t, console.Clear(ctx))
	assert.Empty(t, worker.Sync(ctx))
}

func TestRevokeKeepsNewerToken(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	worker := New(store, nil)
	console := New(store, nil)
	require.NoError(t, console.Establish(ctx, "fresh-token", shop.User{Username: "admin"}))

	require.NoError(t, worker.Revoke(ctx, ""))
	require.NoError(t, worker.Revoke(ctx, "stale-token"))
	assert.True(t, mr.Exists("tailorshop:session"))
	assert.Equal(t, "fresh-token", console.Sync(ctx))

	require.NoError(t, worker.Revoke(ctx, "fresh-token"))
	assert.False(t, mr.Exists("tailorshop:session"))
	assert.Empty(t, console.Sync(ctx))
}

func TestClearHooksRunOnRemoval(t *testing.T) {
	sess := New(NewMemoryStore(), nil)
	ctx := context.Background()
	var calls int
	sess.OnClear(func(context.Context) { calls++ })

	require.NoError(t, sess.Establish(ctx, "tok", shop.User{Username: "admin"}))
	require.NoError(t, sess.Revoke(ctx, "other"))
	assert.Zero(t, calls)
	assert.True(t, sess.Authenticated())

	require.NoError(t, sess.Revoke(ctx, "tok"))
	assert.Equal(t, 1, calls)
	assert.False(t, sess.Authenticated())

	require.NoError(t, sess.Clear(ctx))
	assert.Equal(t, 2, calls)
}
