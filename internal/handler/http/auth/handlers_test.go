package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"mdd-backend/internal/handler/http/auth"
	"mdd-backend/internal/handler/http/dto"
	"mdd-backend/internal/handler/http/respond"
	"mdd-backend/internal/infra/adapter/persistence/memory"
	tokens "mdd-backend/internal/service/auth"
	authUC "mdd-backend/internal/usecase/auth"
	userUC "mdd-backend/internal/usecase/user"
)

type fixture struct {
	mux    *http.ServeMux
	users  *userUC.Service
	tokens *tokens.TokenService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	users := &userUC.Service{Users: store.Users(), Topics: store.Topics(), BcryptCost: bcrypt.MinCost}
	ts := tokens.NewTokenService(secret, "self", 24*time.Hour)
	svc := &authUC.Service{Users: store.Users(), Registrar: users, Tokens: ts, BcryptCost: bcrypt.MinCost}

	mux := http.NewServeMux()
	auth.Register(mux, auth.Routes{
		Auth:     svc,
		Users:    users,
		Verifier: ts,
		Cookie:   auth.Cookie{Secure: true, TTL: ts.TTL()},
	})
	return &fixture{mux: mux, users: users, tokens: ts}
}

func (f *fixture) do(method, path, body string, opts ...func(*http.Request)) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, path, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	for _, o := range opts {
		o(r)
	}
	rr := httptest.NewRecorder()
	f.mux.ServeHTTP(rr, r)
	return rr
}

func bearer(token string) func(*http.Request) {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }
}

func decodeToken(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body dto.Token
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.NotEmpty(t, body.Token)
	return body.Token
}

func tokenCookie(rr *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	return nil
}

const aliceJSON = `{"email":"alice@example.com","username":"alice","password":"correct horse"}`

func TestSignup(t *testing.T) {
	f := newFixture(t)

	rr := f.do(http.MethodPost, "/api/auth/register", aliceJSON)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	token := decodeToken(t, rr)
	sub, err := f.tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", sub)

	c := tokenCookie(rr)
	require.NotNil(t, c)
	assert.Equal(t, token, c.Value)
	assert.Equal(t, 86400, c.MaxAge)
}

func TestSignup_Duplicate(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, http.StatusCreated, f.do(http.MethodPost, "/api/auth/register", aliceJSON).Code)

	tests := []struct {
		name string
		body string
	}{
		{"same email", `{"email":"alice@example.com","username":"alice2","password":"pw"}`},
		{"same username", `{"email":"other@example.com","username":"alice","password":"pw"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := f.do(http.MethodPost, "/api/auth/register", tt.body)
			assert.Equal(t, http.StatusConflict, rr.Code)
			assert.Nil(t, tokenCookie(rr))
		})
	}
}

func TestSignup_Invalid(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name       string
		body       string
		wantFields []string
	}{
		{"malformed", `{"email":`, nil},
		{"missing everything", `{}`, []string{"email", "username", "password"}},
		{"bad email", `{"email":"not-an-email","username":"bob","password":"pw"}`, []string{"email"}},
		{"blank username", `{"email":"bob@example.com","username":"   ","password":"pw"}`, []string{"username"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := f.do(http.MethodPost, "/api/auth/register", tt.body)
			require.Equal(t, http.StatusBadRequest, rr.Code)

			var body respond.ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			for _, field := range tt.wantFields {
				assert.Contains(t, body.FieldErrors, field)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, http.StatusCreated, f.do(http.MethodPost, "/api/auth/register", aliceJSON).Code)

	for _, ident := range []string{"alice@example.com", "alice"} {
		t.Run(ident, func(t *testing.T) {
			before := testutil.ToFloat64(auth.AuthRequests("login", "success"))

			rr := f.do(http.MethodPost, "/api/auth/login", `{"usernameOrEmail":"`+ident+`","password":"correct horse"}`)
			require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

			sub, err := f.tokens.Verify(decodeToken(t, rr))
			require.NoError(t, err)
			assert.Equal(t, "alice@example.com", sub)
			assert.NotNil(t, tokenCookie(rr))
			assert.Equal(t, before+1, testutil.ToFloat64(auth.AuthRequests("login", "success")))
		})
	}
}

func TestLogin_FailsUniformly(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, http.StatusCreated, f.do(http.MethodPost, "/api/auth/register", aliceJSON).Code)

	var messages []string
	for _, body := range []string{
		`{"usernameOrEmail":"alice","password":"wrong"}`,
		`{"usernameOrEmail":"nobody","password":"correct horse"}`,
	} {
		rr := f.do(http.MethodPost, "/api/auth/login", body)
		require.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Nil(t, tokenCookie(rr))

		var resp respond.ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		messages = append(messages, resp.Message)
	}
	assert.Equal(t, messages[0], messages[1])
	assert.Equal(t, "invalid credentials", messages[0])
}

func TestLogin_MissingFields(t *testing.T) {
	f := newFixture(t)
	rr := f.do(http.MethodPost, "/api/auth/login", `{"usernameOrEmail":"alice"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLogout(t *testing.T) {
	f := newFixture(t)
	rr := f.do(http.MethodPost, "/api/auth/logout", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Set-Cookie"), "token=;")
	assert.Contains(t, rr.Header().Get("Set-Cookie"), "Max-Age=0")
}

func TestMe(t *testing.T) {
	f := newFixture(t)
	token := decodeToken(t, f.do(http.MethodPost, "/api/auth/register", aliceJSON))

	rr := f.do(http.MethodGet, "/api/auth/me", "", bearer(token))
	require.Equal(t, http.StatusOK, rr.Code)

	var me dto.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &me))
	assert.Equal(t, "alice@example.com", me.Email)
	assert.Equal(t, "alice", me.Username)
	assert.Empty(t, me.Subscriptions)
	assert.NotContains(t, rr.Body.String(), "password")
}

func TestMe_Unauthenticated(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/api/auth/me", "").Code)
}

func TestMe_DeletedAccount(t *testing.T) {
	f := newFixture(t)
	token := decodeToken(t, f.do(http.MethodPost, "/api/auth/register", aliceJSON))

	v, err := f.users.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.NoError(t, f.users.Delete(context.Background(), v.ID))

	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/api/auth/me", "", bearer(token)).Code)
}

func TestRegister_Throttle(t *testing.T) {
	store := memory.New()
	users := &userUC.Service{Users: store.Users(), Topics: store.Topics(), BcryptCost: bcrypt.MinCost}
	ts := tokens.NewTokenService(secret, "self", time.Hour)

	mux := http.NewServeMux()
	auth.Register(mux, auth.Routes{
		Auth:     &authUC.Service{Users: store.Users(), Registrar: users, Tokens: ts, BcryptCost: bcrypt.MinCost},
		Users:    users,
		Verifier: ts,
		Throttle: func(http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				respond.Message(w, http.StatusTooManyRequests, "too many requests")
			})
		},
	})

	for _, path := range []string{"/api/auth/login", "/api/auth/register"} {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, path, strings.NewReader(aliceJSON)))
		assert.Equal(t, http.StatusTooManyRequests, rr.Code, path)
	}

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}
