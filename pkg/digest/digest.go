// Package digest computes content digests for vault entries.
//
// A digest identifies the exact bytes of a memory at its last write and is
// used to detect content identity/change without re-reading files.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
)

// Content returns the hex-encoded SHA-256 digest of s.
func Content(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}
