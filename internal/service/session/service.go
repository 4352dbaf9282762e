// Package session issues the opaque tokens that key per-visitor carts.
package session

import (
	"crypto/rand"
	"encoding/base64"
	"time"
)

const tokenBytes = 32

// Service mints and checks session tokens. Tokens are stateless: the token
// itself is the cart key, so a restart never invalidates live sessions.
type Service struct {
	ttl time.Duration
}

func New(ttl time.Duration) *Service {
	return &Service{ttl: ttl}
}

// Issue returns a fresh random session token.
func (s *Service) Issue() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Valid reports whether token looks like one we issued. Anything else is
// rejected so arbitrary client strings cannot address cart slots.
func (s *Service) Valid(token string) bool {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return false
	}
	return len(raw) == tokenBytes
}

// TTL is the lifetime handed to the session cookie.
func (s *Service) TTL() time.Duration {
	return s.ttl
}
