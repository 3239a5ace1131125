package helpers

import (
	"crypto/rand"
	"encoding/hex"
)

// NewSessionToken returns a random 256-bit token as lowercase hex.
func NewSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
