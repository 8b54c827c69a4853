package store

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Fingerprint derives the deduplication key for a post or cache item: the
// hex sha256 of the parts joined with "||". Pure function of its inputs —
// no time, no randomness — so identical content always collides with itself
// and nothing else.
func Fingerprint(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "||")))
	return hex.EncodeToString(sum[:])
}
