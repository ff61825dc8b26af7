// Package hash provides the single credential digest primitive used for both
// user login passwords and note unlock passwords. The digest is deterministic
// and unsalted: identical secrets always produce identical digests. That makes
// digests comparable across rows, which the login path relies on, and it is a
// known tradeoff accepted for this deployment model.
package hash

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// Hash returns the hex SHA-256 digest of secret. The empty string is a valid
// input and hashes like any other value.
func Hash(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// Verify reports whether secret hashes to digest.
func Verify(secret, digest string) bool {
	return subtle.ConstantTimeCompare([]byte(Hash(secret)), []byte(digest)) == 1
}
