// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token format")

// Manager mints and verifies signed session tokens. A token is
// self-certifying: there is no server-side session table, the HMAC
// signature alone makes it usable as a ledger key.
type Manager struct {
	secret []byte
}

func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret)}
}

// Mint creates a new signed session token of the form "<uuid>.<sig>".
// The uuid part is random (v4); the signature is HMAC-SHA256 over it.
func (m *Manager) Mint() string {
	id := uuid.NewString()
	return id + "." + m.sign(id)
}

// Verify checks a token's format and signature and returns the token
// itself on success. Tampered or malformed tokens fail with
// ErrInvalidToken.
func (m *Manager) Verify(token string) (string, error) {
	id, sig, ok := strings.Cut(token, ".")
	if !ok {
		return "", ErrInvalidToken
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", ErrInvalidToken
	}
	if !hmac.Equal([]byte(sig), []byte(m.sign(id))) {
		return "", ErrInvalidToken
	}
	return token, nil
}

func (m *Manager) sign(id string) string {
	h := hmac.New(sha256.New, m.secret)
	h.Write([]byte(id))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner cookie values
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}
