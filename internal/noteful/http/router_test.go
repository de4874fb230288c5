package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/noteful/internal/noteful/service"
	"github.com/aussiebroadwan/noteful/internal/noteful/store"
	"github.com/aussiebroadwan/noteful/internal/noteful/store/drivers/sqlite"
	"github.com/aussiebroadwan/noteful/pkg/authsdk"
	"github.com/aussiebroadwan/noteful/pkg/cryptox"
	"github.com/aussiebroadwan/noteful/pkg/httpx"
	"github.com/aussiebroadwan/noteful/pkg/jwtx"
	"github.com/aussiebroadwan/noteful/pkg/slogx"
)

const (
	testUser     = "ryan"
	testPassword = "hunter2"
)

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

type testEnv struct {
	router *Router
	store  *sqlite.Store
	clock  *testClock
}

// newTestEnv builds a router over an in-memory store holding one user.
// configure runs before the routes are applied.
func newTestEnv(t *testing.T, opts Options, configure ...func(*Router)) *testEnv {
	t.Helper()
	ctx := context.Background()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	hasher := cryptox.NewHasher([]byte("test-pepper"))
	users := &service.UserService{Users: st.Users(), Hasher: hasher}
	_, err = users.CreateUser(ctx, testUser, testPassword)
	require.NoError(t, err)

	clock := &testClock{t: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
	access, refresh, err := jwtx.NewCodecPair(
		[]byte("access-secret"), []byte("refresh-secret"),
		time.Minute, time.Hour,
		jwtx.WithClock(clock.Now),
	)
	require.NoError(t, err)

	r := NewRouter(access, opts, st, slogx.Discard())
	r.SessionService = &service.SessionService{
		Store:   store.NewCredentialStore(st.Users(), st.RefreshTokens()),
		Hasher:  hasher,
		Access:  access,
		Refresh: refresh,
	}
	r.FolderService = &service.FolderService{Folders: st.Folders()}
	r.NoteService = &service.NoteService{Notes: st.Notes(), Now: clock.Now}
	for _, fn := range configure {
		fn(r)
	}
	r.ApplyRoutes()

	return &testEnv{router: r, store: st, clock: clock}
}

// do sends body (raw JSON when non-empty) with the access cookie when token
// is set.
func (e *testEnv) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: AccessCookieName, Value: token})
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/login", `{"username":"ryan","password":"hunter2"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	return accessCookie(t, rec).Value
}

func accessCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == AccessCookieName {
			return c
		}
	}
	t.Fatalf("response has no %s cookie", AccessCookieName)
	return nil
}

func decodeMsg(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body authsdk.MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Msg
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t, Options{})

	t.Run("success sets session cookie", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/login", `{"username":"ryan","password":"hunter2"}`, "")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Empty(t, rec.Body.String())

		c := accessCookie(t, rec)
		require.NotEmpty(t, c.Value)
		require.Equal(t, "/", c.Path)
		require.True(t, c.HttpOnly)
		require.Equal(t, http.SameSiteLaxMode, c.SameSite)
		require.True(t, c.Secure)
		require.True(t, c.Expires.IsZero(), "browser session cookie")
		require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	})

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantMsg  string
	}{
		{"missing password", `{"username":"ryan"}`, http.StatusUnprocessableEntity, "Missing Information"},
		{"empty object", `{}`, http.StatusUnprocessableEntity, "Missing Information"},
		{"not json", `username=ryan`, http.StatusUnprocessableEntity, "Missing Information"},
		{"unknown user", `{"username":"nobody","password":"hunter2"}`, http.StatusForbidden, "User doesnt exist"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/login", tt.body, "")
			require.Equal(t, tt.wantCode, rec.Code)
			require.Equal(t, tt.wantMsg, decodeMsg(t, rec))
			require.Empty(t, rec.Result().Cookies())
		})
	}

	t.Run("no body", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/login", "", "")
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("wrong password has empty body", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/login", `{"username":"ryan","password":"nope"}`, "")
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Empty(t, rec.Body.String())
		require.Empty(t, rec.Result().Cookies())
	})
}

func TestGate(t *testing.T) {
	env := newTestEnv(t, Options{})
	token := env.login(t)

	t.Run("valid cookie", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/", "", token)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "Hello, world!", rec.Body.String())
	})

	rejected := map[string]string{
		"no cookie":      "",
		"garbage cookie": "not-a-jwt",
		"tampered":       token + "x",
	}
	for name, tok := range rejected {
		t.Run(name, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, "/", "", tok)
			require.Equal(t, http.StatusForbidden, rec.Code)
			require.Empty(t, rec.Body.String())
		})
	}

	t.Run("resources are gated", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/folders", "", "")
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Empty(t, rec.Body.String())
	})

	t.Run("unknown path is gated before 404", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/nope", "", "")
		require.Equal(t, http.StatusForbidden, rec.Code)

		rec = env.do(t, http.MethodGet, "/nope", "", token)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		env.clock.Advance(time.Minute)
		rec := env.do(t, http.MethodGet, "/", "", token)
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Empty(t, rec.Body.String())
	})
}

func TestRefreshToken(t *testing.T) {
	env := newTestEnv(t, Options{})

	t.Run("missing cookie", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/refreshToken", "", "")
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Equal(t, "Access token is missing", decodeMsg(t, rec))
	})

	t.Run("no session yet", func(t *testing.T) {
		// Signed with the right secret but never stored.
		tok, _, err := env.router.SessionService.Access.Issue(testUser, "sid")
		require.NoError(t, err)

		rec := env.do(t, http.MethodGet, "/refreshToken", "", tok)
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Empty(t, rec.Body.String())
	})

	old := env.login(t)
	env.clock.Advance(2 * time.Minute)

	var fresh string
	t.Run("expired access token is refreshed", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/refreshToken", "", old)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Empty(t, rec.Body.String())

		fresh = accessCookie(t, rec).Value
		require.NotEqual(t, old, fresh)

		rec = env.do(t, http.MethodGet, "/", "", fresh)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("superseded token cannot refresh", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/refreshToken", "", old)
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Empty(t, rec.Body.String())
	})

	t.Run("forged token", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/refreshToken", "", "a.b.c")
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Empty(t, rec.Body.String())
	})

	t.Run("refresh token expired", func(t *testing.T) {
		env.clock.Advance(2 * time.Hour)
		rec := env.do(t, http.MethodGet, "/refreshToken", "", fresh)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestServerErrors(t *testing.T) {
	t.Run("store failure on login", func(t *testing.T) {
		env := newTestEnv(t, Options{})
		require.NoError(t, env.store.Close())

		rec := env.do(t, http.MethodPost, "/login", `{"username":"ryan","password":"hunter2"}`, "")
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Empty(t, rec.Result().Cookies())

		var body struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.NotEmpty(t, body.Message)
		require.Equal(t, body.Message, body.Error)
	})

	t.Run("store failure on refresh", func(t *testing.T) {
		env := newTestEnv(t, Options{Production: true})
		token := env.login(t)
		require.NoError(t, env.store.Close())

		rec := env.do(t, http.MethodGet, "/refreshToken", "", token)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Contains(t, rec.Body.String(), httpx.ServerErrorMessage)
	})

	t.Run("panic becomes 500", func(t *testing.T) {
		env := newTestEnv(t, Options{Production: true})
		env.router.Mux.HandleFunc("GET /panic", func(http.ResponseWriter, *http.Request) {
			panic(errors.New("boom"))
		})

		rec := env.do(t, http.MethodGet, "/panic", "", "")
		require.Equal(t, http.StatusInternalServerError, rec.Code)

		var body struct {
			Error httpx.ErrorBody `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, httpx.ServerErrorMessage, body.Error.Message)
	})
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, Options{BuildVersion: "v-test"})

	rec := env.do(t, http.MethodGet, "/livez", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var live authsdk.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &live))
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "v-test", live.Version)

	rec = env.do(t, http.MethodGet, "/readyz", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var ready authsdk.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ready))
	require.Equal(t, "ok", ready.Checks.Database)
	require.Empty(t, ready.Checks.Sessions)

	t.Run("session backend down", func(t *testing.T) {
		env := newTestEnv(t, Options{}, func(r *Router) {
			r.Sessions = pingFunc(func(context.Context) error { return errors.New("connection refused") })
		})

		rec := env.do(t, http.MethodGet, "/readyz", "", "")
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		var body authsdk.HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, "unavailable", body.Status)
		require.Contains(t, body.Checks.Sessions, "connection refused")
	})
}

func TestMiddleware(t *testing.T) {
	env := newTestEnv(t, Options{CORSOrigin: "https://app.example.com"})

	req := httptest.NewRequest(http.MethodGet, "/livez", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set(slogx.RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	require.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	require.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	require.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	require.Equal(t, "req-123", rec.Header().Get(slogx.RequestIDHeader))
}

func TestMiddleware_WildcardCORS(t *testing.T) {
	env := newTestEnv(t, Options{})
	token := env.login(t)

	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	req.Header.Set("Origin", "https://attacker.example")
	req.AddCookie(&http.Cookie{Name: AccessCookieName, Value: token})
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}
