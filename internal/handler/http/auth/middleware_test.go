package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdd-backend/internal/handler/http/auth"
	"mdd-backend/internal/handler/http/respond"
	tokens "mdd-backend/internal/service/auth"
)

var secret = []byte("test-secret-key-at-least-32-bytes!!")

type fixedClock struct{ t time.Time }

func (c *fixedClock) now() time.Time { return c.t }

func echoEmail() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, _ := auth.EmailFromContext(r.Context())
		_, _ = w.Write([]byte(email))
	})
}

func TestResolveToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		cookie string
		want   string
	}{
		{"none", "", "", ""},
		{"bearer header", "Bearer abc", "", "abc"},
		{"lowercase scheme", "bearer abc", "", "abc"},
		{"cookie", "", "xyz", "xyz"},
		{"header wins over cookie", "Bearer abc", "xyz", "abc"},
		{"basic auth ignored", "Basic dXNlcjpwYXNz", "xyz", "xyz"},
		{"empty bearer", "Bearer ", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/topics", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				r.AddCookie(&http.Cookie{Name: auth.CookieName, Value: tt.cookie})
			}
			assert.Equal(t, tt.want, auth.ResolveToken(r))
		})
	}
}

func TestRequire(t *testing.T) {
	clock := &fixedClock{t: time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)}
	ts := tokens.NewTokenService(secret, "self", 24*time.Hour, tokens.WithClock(clock.now))
	token, err := ts.Issue("alice@example.com")
	require.NoError(t, err)
	h := auth.Require(ts)(echoEmail())

	t.Run("bearer", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/topics", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, r)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "alice@example.com", rr.Body.String())
	})

	t.Run("cookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/topics", nil)
		r.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, r)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "alice@example.com", rr.Body.String())
	})

	t.Run("missing", func(t *testing.T) {
		before := testutil.ToFloat64(auth.TokenVerifications("missing"))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/topics", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		var body respond.ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "authentication required", body.Message)
		assert.Equal(t, before+1, testutil.ToFloat64(auth.TokenVerifications("missing")))
	})

	t.Run("tampered", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/topics", nil)
		r.Header.Set("Authorization", "Bearer "+token+"x")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, r)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("expired", func(t *testing.T) {
		clock.t = clock.t.Add(24*time.Hour + time.Second)
		defer func() { clock.t = clock.t.Add(-(24*time.Hour + time.Second)) }()

		r := httptest.NewRequest(http.MethodGet, "/api/topics", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, r)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		var body respond.ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "invalid or expired token", body.Message)
	})
}

func TestCookie(t *testing.T) {
	c := auth.Cookie{Secure: true, TTL: 24 * time.Hour}

	rr := httptest.NewRecorder()
	c.Set(rr, "abc")
	set := rr.Result().Cookies()
	require.Len(t, set, 1)
	assert.Equal(t, "token", set[0].Name)
	assert.Equal(t, "abc", set[0].Value)
	assert.Equal(t, 86400, set[0].MaxAge)
	assert.Equal(t, "/", set[0].Path)
	assert.True(t, set[0].HttpOnly)
	assert.True(t, set[0].Secure)
	assert.Equal(t, http.SameSiteLaxMode, set[0].SameSite)

	rr = httptest.NewRecorder()
	c.Clear(rr)
	assert.Contains(t, rr.Header().Get("Set-Cookie"), "Max-Age=0")
}
