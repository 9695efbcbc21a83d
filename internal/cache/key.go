// Package cache provides the two-tier result cache: a bounded in-process
// tier backed by an optional durable store, with TTL expiry and
// stale-while-revalidate refresh.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Truncation lengths for key derivation. Truncating before hashing makes
// near-duplicate long résumés share a cache key on purpose: hit rate is
// preferred over exactness here.
const (
	resumeKeyPrefixLen = 500
	jobKeyPrefixLen    = 200
)

// Key derives a stable cache key from the operation name and truncated
// input prefixes.
func Key(op, resumeText, jobDescription string) string {
	payload := op + "|" + truncateRunes(resumeText, resumeKeyPrefixLen) + "|" + truncateRunes(jobDescription, jobKeyPrefixLen)
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// truncateRunes returns at most n runes of s without splitting a rune.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
