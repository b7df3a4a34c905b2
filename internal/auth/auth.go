// Package auth gates the admin surface. A single configured admin password is
// exchanged for a short-lived bearer token; the token guards the list-all and
// status-transition endpoints.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 8 * time.Hour

var ErrInvalidToken = errors.New("invalid or expired token")

// Manager verifies the admin password and issues session tokens
type Manager struct {
	passwordHash []byte
	signingKey   []byte
}

// NewManager creates a manager from a bcrypt password hash and a signing secret
func NewManager(passwordHash, signingKey string) *Manager {
	return &Manager{
		passwordHash: []byte(passwordHash),
		signingKey:   []byte(signingKey),
	}
}

// HashPassword bcrypt-hashes a plaintext admin password; used at startup when
// the config carries a plaintext password instead of a hash.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether the supplied password matches the admin hash
func (m *Manager) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword(m.passwordHash, []byte(password)) == nil
}

// IssueToken returns a signed admin session token
func (m *Manager) IssueToken() (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": "admin",
		"jti":  uuid.New().String(),
		"iat":  now.Unix(),
		"exp":  now.Add(tokenTTL).Unix(),
	})

	signed, err := token.SignedString(m.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken checks a token's signature, expiry and admin role
func (m *Manager) VerifyToken(tokenString string) error {
	token, err := jwt.Parse(tokenString,
		func(t *jwt.Token) (interface{}, error) { return m.signingKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["role"] != "admin" {
		return ErrInvalidToken
	}
	return nil
}

// Middleware rejects requests without a valid admin bearer token
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || m.VerifyToken(tokenString) != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"Unauthorized"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
