package session

import (
	"crypto/rand"
	"encoding/base64"
)

// TokenKey is the attribute holding the per-session anti-forgery token seed.
const TokenKey = "__elgg_session"

// generateToken creates a cryptographically secure random token using 32 bytes (256 bits)
// encoded as base64 URL-safe string without padding.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
