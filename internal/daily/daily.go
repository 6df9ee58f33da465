// Package daily derives deterministic word indices from string keys.
//
// Seeded resets and the word of the day both map a key to an index with
// HMAC-SHA256(salt, key) so results are stable for a given salt but not
// guessable without it.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Index returns HMAC(salt, key) % n, or 0 when n <= 0.
func Index(key, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(key))
	sum := h.Sum(nil)
	// take first 8 bytes to uint64 for modulus distribution
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// WordIndex returns the deterministic index of the word of the day for date.
func WordIndex(date time.Time, salt string, n int) int {
	return Index(DateKey(date), salt, n)
}
