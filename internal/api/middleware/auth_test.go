package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func createTestToken(t *testing.T, username, role string, ttl time.Duration) string {
	t.Helper()
	token, err := IssueToken(testSecret, username, role, ttl)
	require.NoError(t, err)
	return token
}

func serve(h http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func errorType(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestRequireAuth_ValidToken(t *testing.T) {
	m := NewAuthMiddleware(testSecret)

	var gotUser, gotRole string
	h := m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = GetUsername(r)
		gotRole = GetRole(r)
		require.NotNil(t, GetJWTClaims(r))
		w.WriteHeader(http.StatusOK)
	}))

	w := serve(h, createTestToken(t, "alice", "user", time.Hour))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", gotUser)
	assert.Equal(t, "user", gotRole)
}

func TestRequireAuth_MissingToken(t *testing.T) {
	m := NewAuthMiddleware(testSecret)
	h := m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called")
	}))

	w := serve(h, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AuthRequired", errorType(t, w))
}

func TestRequireAuth_InvalidTokens(t *testing.T) {
	m := NewAuthMiddleware(testSecret)
	h := m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called")
	}))

	wrongKey, err := IssueToken("other-secret", "alice", "user", time.Hour)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"username": "alice",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := map[string]string{
		"garbage":     "not-a-jwt",
		"wrong key":   wrongKey,
		"expired":     createTestToken(t, "alice", "user", -time.Minute),
		"alg none":    none,
		"no username": createTestToken(t, "", "user", time.Hour),
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			w := serve(h, token)
			assert.Equal(t, http.StatusForbidden, w.Code)
			assert.Equal(t, "InvalidToken", errorType(t, w))
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	m := NewAuthMiddleware(testSecret)
	h := m.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	assert.Equal(t, http.StatusOK, serve(h, createTestToken(t, "admin_user", RoleAdmin, time.Hour)).Code)
	assert.Equal(t, http.StatusForbidden, serve(h, createTestToken(t, "mallory", "user", time.Hour)).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(h, "").Code)
}

func TestOptionalAuth(t *testing.T) {
	m := NewAuthMiddleware(testSecret)

	var gotUser string
	h := m.OptionalAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = GetUsername(r)
		w.WriteHeader(http.StatusOK)
	}))

	assert.Equal(t, http.StatusOK, serve(h, "").Code)
	assert.Empty(t, gotUser)

	assert.Equal(t, http.StatusOK, serve(h, "garbage").Code)
	assert.Empty(t, gotUser)

	assert.Equal(t, http.StatusOK, serve(h, createTestToken(t, "bob", "user", time.Hour)).Code)
	assert.Equal(t, "bob", gotUser)
}
