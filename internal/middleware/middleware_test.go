package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskvault/taskvault/internal/models"
)

func TestRequestID(t *testing.T) {
	t.Run("generates an ID when absent", func(t *testing.T) {
		var captured string
		handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			captured = GetRequestID(r.Context())
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotEmpty(t, captured)
		assert.Equal(t, captured, rec.Header().Get("X-Request-ID"))
	})

	t.Run("propagates an existing ID", func(t *testing.T) {
		var captured string
		handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			captured = GetRequestID(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "upstream-id")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "upstream-id", captured)
		assert.Equal(t, "upstream-id", rec.Header().Get("X-Request-ID"))
	})

	t.Run("empty context has no ID", func(t *testing.T) {
		assert.Empty(t, GetRequestID(context.Background()))
	})
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
		ok     bool
	}{
		{"valid", "Bearer abc123", "abc123", true},
		{"missing", "", "", false},
		{"wrong scheme", "Basic abc123", "", false},
		{"no token", "Bearer", "", false},
		{"empty token", "Bearer ", "", false},
		{"extra parts", "Bearer a b", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			got, ok := BearerToken(req)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

type staticAuthenticator struct {
	identity *models.Identity
	err      error
}

func (a *staticAuthenticator) Authenticate(ctx context.Context, token string) (*models.Identity, error) {
	return a.identity, a.err
}

func TestRequireAuth(t *testing.T) {
	t.Run("rejects missing header", func(t *testing.T) {
		guard := NewAuthMiddleware(&staticAuthenticator{})
		rec := httptest.NewRecorder()
		guard.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not be called")
		})(rec, httptest.NewRequest(http.MethodGet, "/todos", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects failed authentication", func(t *testing.T) {
		guard := NewAuthMiddleware(&staticAuthenticator{err: errors.New("bad token")})
		req := httptest.NewRequest(http.MethodGet, "/todos", nil)
		req.Header.Set("Authorization", "Bearer whatever")

		rec := httptest.NewRecorder()
		guard.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not be called")
		})(rec, req)

		// An opaque failure is normalized, never leaked as-is.
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "bad token")
	})

	t.Run("attaches the identity on success", func(t *testing.T) {
		want := &models.Identity{UserID: "user-1", Email: "alice@example.com"}
		guard := NewAuthMiddleware(&staticAuthenticator{identity: want})
		req := httptest.NewRequest(http.MethodGet, "/todos", nil)
		req.Header.Set("Authorization", "Bearer good")

		var got *models.Identity
		rec := httptest.NewRecorder()
		guard.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
			got = GetIdentity(r.Context())
		})(rec, req)

		require.NotNil(t, got)
		assert.Equal(t, want.UserID, got.UserID)
	})
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{"remote addr only", "203.0.113.7:4821", nil, "203.0.113.7"},
		{"x-forwarded-for first entry", "10.0.0.1:80", map[string]string{"X-Forwarded-For": "198.51.100.2, 10.0.0.1"}, "198.51.100.2"},
		{"x-real-ip fallback", "10.0.0.1:80", map[string]string{"X-Real-IP": "198.51.100.9"}, "198.51.100.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, ClientIP(req))
		})
	}
}
