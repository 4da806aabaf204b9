// Package session issues and verifies the signed tokens carried by the Q&A
// app's session cookie. The token is an opaque claim of the user's name; the
// full identity is re-read from storage on every request.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName is the cookie the Q&A app stores the session token in.
const CookieName = "qa_session"

// ErrInvalidToken is returned when a token fails signature or claim checks.
var ErrInvalidToken = errors.New("invalid session token")

// Claims are the signed session contents.
type Claims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// Manager signs and verifies session tokens with a configured key.
type Manager struct {
	key []byte
	ttl time.Duration
}

// NewManager builds a manager. The signing key must be supplied by
// configuration; an empty key is a startup error, never generated here.
func NewManager(signingKey string, ttl time.Duration) (*Manager, error) {
	if signingKey == "" {
		return nil, errors.New("session signing key is required")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{key: []byte(signingKey), ttl: ttl}, nil
}

// Issue returns a signed token naming the user.
func (m *Manager) Issue(name string) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.key)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Verify checks the token and returns the user name it names. It is a pure
// function of the token and the configured key.
func (m *Manager) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return m.key, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Name == "" {
		return "", ErrInvalidToken
	}
	return claims.Name, nil
}
