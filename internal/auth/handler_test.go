package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/startailors/tailorshop/internal/api"
	"github.com/startailors/tailorshop/internal/auth"
	"github.com/startailors/tailorshop/internal/session"
	_ "github.com/startailors/tailorshop/testing"
)

func newAuthRouter(t *testing.T, backend http.HandlerFunc) (http.Handler, *session.Session) {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)
	sess := session.New(session.NewMemoryStore(), nil)
	client := api.NewClient(srv.URL, sess)
	r := chi.NewRouter()
	auth.NewHandler(nil, auth.NewService(client)).MountRoutes(r)
	return r, sess
}

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	h.ServeHTTP(res, req)
	return res
}

func TestLoginEstablishesSession(t *testing.T) {
	var sent map[string]string
	router, sess := newAuthRouter(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
		_, _ = w.Write([]byte(`{"message":"Login successful","token":"tok","user":{"id":1,"username":"admin","role":"admin"}}`))
	})

	res := post(t, router, "/auth/login", `{"username":" admin ","password":"secret"}`)

	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "admin", sent["username"])
	assert.Equal(t, "tok", sess.Token())
	assert.True(t, sess.Authenticated())
	assert.NotContains(t, res.Body.String(), "tok\"")
}

func TestLoginValidation(t *testing.T) {
	router, _ := newAuthRouter(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("backend must not be called")
	})

	res := post(t, router, "/auth/login", `{"username":"admin"}`)
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, res.Body.String(), "Password")
}

func TestLoginInvalidCredentials(t *testing.T) {
	router, sess := newAuthRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
	})

	res := post(t, router, "/auth/login", `{"username":"admin","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Contains(t, res.Body.String(), "invalid username or password")
	assert.False(t, sess.Authenticated())
}

func TestLogoutClearsSession(t *testing.T) {
	router, sess := newAuthRouter(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":"Login successful","token":"tok","user":{"id":1,"username":"admin"}}`))
	})
	require.Equal(t, http.StatusOK, post(t, router, "/auth/login", `{"username":"admin","password":"pw"}`).Code)

	res := post(t, router, "/auth/logout", ``)
	assert.Equal(t, http.StatusNoContent, res.Code)
	assert.False(t, sess.Authenticated())
}

func TestMeSignedOutAfter401(t *testing.T) {
	router, _ := newAuthRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Contains(t, res.Body.String(), `"action":"login"`)
}

func TestRegisterValidatesEmail(t *testing.T) {
	router, _ := newAuthRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"User registered successfully"}`))
	})

	bad := post(t, router, "/auth/register", `{"name":"Ann","email":"nope","password":"secret1"}`)
	assert.Equal(t, http.StatusBadRequest, bad.Code)

	ok := post(t, router, "/auth/register", `{"name":"Ann","email":"ann@example.com","password":"secret1"}`)
	assert.Equal(t, http.StatusCreated, ok.Code)
	assert.Contains(t, ok.Body.String(), "User registered successfully")
}
