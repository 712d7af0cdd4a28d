package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

// ErrItemTooLarge is returned when a payload exceeds the cache capacity.
var ErrItemTooLarge = errors.New("payload larger than cache capacity")

// Stats holds cache performance counters.
type Stats struct {
	Capacity  int64 // maximum capacity in bytes
	Size      int64 // current size in bytes
	ItemCount int64 // number of payloads held

	Hits      int64
	Misses    int64
	Evictions int64
	HitRate   float64 // hits / (hits + misses)
}

// Key derives a cache key from the request coordinates that determine a
// payload: engine, model, voice and prompt text.
func Key(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(sum[:])
}
