package items

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
)

var (
	// ErrKeyRequired means a private item was requested without a secret key.
	ErrKeyRequired = errors.New("secret key is required")

	// ErrForbidden means the supplied credential did not match.
	ErrForbidden = errors.New("invalid secret key")
)

// KeyMatches compares a supplied credential against the expected one in
// constant time. Secret keys gate access to possibly sensitive content, and
// a naive string compare leaks how much of the key prefix is right.
func KeyMatches(supplied, expected string) bool {
	if expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(supplied), []byte(expected)) == 1
}

// Authorize decides whether a read of item may proceed. A matching admin
// key (admin true) grants access unconditionally. Public items need no
// credential. Private items need the supplied key to match the stored one.
//
// A private item with no stored secret key is broken data; it is refused
// rather than silently opened.
func Authorize(item *Item, suppliedKey string, admin bool) error {
	if admin {
		return nil
	}
	if item.IsPublic() {
		return nil
	}
	if suppliedKey == "" {
		return ErrKeyRequired
	}
	if item.SecretKey == "" {
		return ErrForbidden
	}
	if !KeyMatches(suppliedKey, item.SecretKey) {
		return ErrForbidden
	}
	return nil
}

// NewID generates a random item identifier. IDs are assigned server side
// and are long enough that collisions are not checked for.
func NewID() string {
	var b [16]byte
	mustRead(b[:])
	return hex.EncodeToString(b[:])
}

// NewSecretKey generates the random URL-safe token gating a private item.
// 128 bits, base64url without padding, so it can ride in a query string.
func NewSecretKey() string {
	var b [16]byte
	mustRead(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

func mustRead(p []byte) {
	if _, err := rand.Read(p); err != nil {
		// crypto/rand failing means the platform is unusable
		panic(err)
	}
}
