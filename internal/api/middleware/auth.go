package middleware

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Context keys for storing user information
type contextKey string

const (
	UsernameKey  contextKey = "username"
	RoleKey      contextKey = "role"
	JWTClaimsKey contextKey = "jwt_claims"
)

// RoleAdmin is the role claim value granting moderator routes
const RoleAdmin = "admin"

// Claims are the forum's access token claims
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// AuthMiddleware verifies HS256 bearer tokens signed with a shared secret
type AuthMiddleware struct {
	secret []byte
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(secret string) *AuthMiddleware {
	return &AuthMiddleware{secret: []byte(secret)}
}

// IssueToken signs claims for username and role valid for ttl.
// Used by cmd/genjwt and tests.
func IssueToken(secret, username, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Verify parses token and checks its signature, expiry and username claim
func (m *AuthMiddleware) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if claims.Username == "" {
		return nil, errors.New("missing username claim")
	}
	return claims, nil
}

// RequireAuth middleware ensures the request carries a valid token.
// No token returns 401; a token that fails verification returns 403.
// On success the username, role and claims are injected into the context.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			writeAuthError(w, http.StatusUnauthorized, "AuthRequired", "Missing or malformed Authorization header")
			return
		}

		claims, err := m.Verify(token)
		if err != nil {
			log.Printf("[AUTH_FAILURE] type=verification_failed ip=%s method=%s path=%s error=%v",
				r.RemoteAddr, r.Method, r.URL.Path, err)
			writeAuthError(w, http.StatusForbidden, "InvalidToken", "Invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

// RequireAdmin is RequireAuth plus an admin role claim
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetRole(r) != RoleAdmin {
			writeAuthError(w, http.StatusForbidden, "Forbidden", "Admin role required")
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// OptionalAuth loads user info if a valid token is present, but doesn't require it
func (m *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.Verify(token)
		if err != nil {
			log.Printf("Optional auth failed: %v", err)
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	return token, token != ""
}

func withClaims(ctx context.Context, claims *Claims) context.Context {
	ctx = context.WithValue(ctx, UsernameKey, claims.Username)
	ctx = context.WithValue(ctx, RoleKey, claims.Role)
	return context.WithValue(ctx, JWTClaimsKey, claims)
}

// GetUsername extracts the authenticated username from the request context.
// Returns empty string if not authenticated.
func GetUsername(r *http.Request) string {
	username, _ := r.Context().Value(UsernameKey).(string)
	return username
}

// GetRole extracts the role claim from the request context
func GetRole(r *http.Request) string {
	role, _ := r.Context().Value(RoleKey).(string)
	return role
}

// GetJWTClaims extracts the JWT claims from the request context.
// Returns nil if not authenticated.
func GetJWTClaims(r *http.Request) *Claims {
	claims, _ := r.Context().Value(JWTClaimsKey).(*Claims)
	return claims
}

// SetTestUser sets the username and role in the context for testing purposes.
// This function should ONLY be used in tests to mock authenticated users.
func SetTestUser(ctx context.Context, username, role string) context.Context {
	ctx = context.WithValue(ctx, UsernameKey, username)
	return context.WithValue(ctx, RoleKey, role)
}

// writeAuthError writes a JSON error response for authentication failures
func writeAuthError(w http.ResponseWriter, status int, errType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	response := `{"error":"` + errType + `","message":"` + message + `"}`
	if _, err := w.Write([]byte(response)); err != nil {
		log.Printf("Failed to write auth error response: %v", err)
	}
}
