package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"horizon-server/src/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoUserID() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		w.Header().Set("X-User", string(rune('0'+userID)))
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth_BearerToken(t *testing.T) {
	auth := NewAuth("secret")
	token, expires, err := auth.IssueToken(7, "jane@example.com")
	require.NoError(t, err)
	assert.True(t, expires.After(time.Now()))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	auth.Middleware(echoUserID()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "7", rec.Header().Get("X-User"))
}

func TestAuth_SessionCookie(t *testing.T) {
	auth := NewAuth("secret")
	token, _, err := auth.IssueToken(3, "jane@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	rec := httptest.NewRecorder()

	auth.Middleware(echoUserID()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "3", rec.Header().Get("X-User"))
}

func TestAuth_Rejects(t *testing.T) {
	auth := NewAuth("secret")
	otherKey, _, err := NewAuth("other").IssueToken(1, "x@example.com")
	require.NoError(t, err)

	expiredAuth := NewAuth("secret")
	expiredAuth.now = func() time.Time { return time.Now().Add(-200 * time.Hour) }
	expired, _, err := expiredAuth.IssueToken(1, "x@example.com")
	require.NoError(t, err)

	for name, header := range map[string]string{
		"missing":   "",
		"garbage":   "Bearer nope",
		"wrong key": "Bearer " + otherKey,
		"expired":   "Bearer " + expired,
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()

		auth.Middleware(echoUserID()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, name)
	}
}

func TestCORSMiddleware(t *testing.T) {
	handler := CORSMiddleware([]string{"https://app.example"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://app.example")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDemoModeMiddleware(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	tests := []struct {
		isDemo bool
		method string
		path   string
		want   int
	}{
		{true, http.MethodGet, "/api/accounts", http.StatusOK},
		{true, http.MethodPost, "/api/sign-in", http.StatusOK},
		{true, http.MethodPost, "/api/plaid/exchange-public-token", http.StatusForbidden},
		{true, http.MethodDelete, "/api/banks/1", http.StatusForbidden},
		{false, http.MethodPost, "/api/plaid/exchange-public-token", http.StatusOK},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		DemoModeMiddleware(tt.isDemo)(ok).ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
		assert.Equal(t, tt.want, rec.Code, "%v %s %s", tt.isDemo, tt.method, tt.path)
	}
}

func TestDemoModeMiddleware_LogsBlockedWrite(t *testing.T) {
	buf := &bytes.Buffer{}
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	req := httptest.NewRequest(http.MethodPost, "/api/plaid/create-link-token", nil)
	req = req.WithContext(logger.WithContext(req.Context(), logger.NewWithWriter(buf)))
	rec := httptest.NewRecorder()

	DemoModeMiddleware(true)(ok).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, buf.String(), "Blocked write in demo mode")
	assert.Contains(t, buf.String(), `"path":"/api/plaid/create-link-token"`)
}

func TestRequestLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := RequestLogger(logger.NewWithWriter(buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		log.Info().Msg("inside handler")
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/sign-up", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
	out := buf.String()
	assert.Contains(t, out, "inside handler")
	assert.Contains(t, out, `"request_id":"req-123"`)
	assert.Contains(t, out, `"status":201`)
	assert.Contains(t, out, `"path":"/api/sign-up"`)
}
