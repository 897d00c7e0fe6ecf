// Package hashutil derives short storage keys for timetable entries.
package hashutil

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"
)

// KeyLength is the number of hex characters in a generated key.
const KeyLength = 12

// EntryKey returns a storage key for the entry id created at t. attempt is
// mixed into the seed so a caller can step past a key that is already taken.
func EntryKey(id string, t time.Time, attempt int) string {
	seed := id + "\x00" + strconv.FormatInt(t.UnixNano(), 10) + "\x00" + strconv.Itoa(attempt)
	return KeyFromSeed(seed)
}

// KeyFromSeed hashes seed into a deterministic key.
func KeyFromSeed(seed string) string {
	sum := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(sum[:])[:KeyLength]
}
