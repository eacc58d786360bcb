// Package auth issues and checks session tokens handed out at login.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoSubject is returned for tokens without a subject claim.
var ErrNoSubject = errors.New("token has no subject")

// Tokens wraps a signing secret for issuing/verifying HS256 tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

// New creates a token signer/verifier. A non-positive ttl defaults to 24h.
func New(secret string, ttl time.Duration) *Tokens {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Tokens{secret: []byte(secret), ttl: ttl}
}

// Sign creates a token whose subject is uid.
func (t *Tokens) Sign(uid string) (string, error) {
	if uid == "" {
		return "", ErrNoSubject
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": uid,
		"iat": now.Unix(),
		"exp": now.Add(t.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Verify checks tok and returns its subject.
func (t *Tokens) Verify(tok string) (string, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tok, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	uid, _ := claims["sub"].(string)
	if uid == "" {
		return "", ErrNoSubject
	}
	return uid, nil
}
