package connect

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
)

// Client IDs are exactly 26 lowercase base32 characters.
const clientIDLength = 26

// ValidClientID reports whether s meets the Connect client ID spec:
// a fixed-length lowercase alphanumeric token.
func ValidClientID(s string) bool {
	if len(s) != clientIDLength {
		return false
	}
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'z') {
			return false
		}
	}
	return true
}

// NewClientID creates a valid client ID. The ID is random but not
// intended to be cryptographically meaningful.
func NewClientID() string {
	buf := make([]byte, 16)
	// rand.Read never returns an error on supported platforms.
	_, _ = rand.Read(buf)
	encoded := base32.StdEncoding.EncodeToString(buf)
	return strings.ToLower(strings.TrimRight(encoded, "="))
}
