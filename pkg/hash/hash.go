// Package hash provides hashing utilities for dev-service identifiers.
package hash

import (
	"crypto/sha1"
	"encoding/hex"
	"io"
)

// ShortLen is the length of a short hash.
const ShortLen = 8

// Short returns the first 8 characters of a hex digest, or the digest itself
// when it is shorter.
func Short(digest string) string {
	if len(digest) < ShortLen {
		return digest
	}
	return digest[:ShortLen]
}

// SHA1Sum returns the full SHA1 hash of a string.
func SHA1Sum(s string) string {
	hasher := sha1.New()
	_, _ = io.WriteString(hasher, s)
	return hex.EncodeToString(hasher.Sum(nil))
}
