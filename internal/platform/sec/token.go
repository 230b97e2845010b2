// Copyright (c) 2026 Litho Press. All rights reserved.

package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// GenerateSecureToken returns a cryptographically random hex token.
//
// The byteLength parameter is the entropy size; the returned string is
// twice that long (hex encoding).
func GenerateSecureToken(byteLength int) (string, error) {
	buf := make([]byte, byteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("sec: failed to generate secure token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// HashToken returns the hex-encoded SHA-256 digest of a token.
//
// Refresh tokens are stored hashed so a database leak does not expose
// usable session credentials.
func HashToken(token string) string {
	digest := sha256.Sum256([]byte(token))
	return hex.EncodeToString(digest[:])
}
