// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidToken     = errors.New("invalid token format")
	ErrInvalidSignature = errors.New("invalid session signature")
)

// NewSessionID returns a random session identifier
func NewSessionID() string {
	return uuid.NewString()
}

// signSession creates an HMAC over the session id
func signSession(sessionID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(sessionID))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner cookies
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// SessionToken returns "<id>.<signature>" for use in a cookie
func SessionToken(sessionID, salt string) string {
	return sessionID + "." + signSession(sessionID, salt)
}

// ParseSessionToken verifies a token and returns its session id.
// It does not check that the session still exists.
func ParseSessionToken(token, salt string) (string, error) {
	id, sig, ok := strings.Cut(token, ".")
	if !ok || id == "" || sig == "" {
		return "", ErrInvalidToken
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", ErrInvalidToken
	}

	expected := signSession(id, salt)
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return "", ErrInvalidSignature
	}
	return id, nil
}

// HashIP creates a salted one-way hash of an IP address
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:8])
}
