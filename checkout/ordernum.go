package checkout

import (
	"fmt"
	"sync"
	"time"
)

// Order numbers are derived from the wall clock in milliseconds with a
// short brand prefix. Two orders landing in the same millisecond would
// otherwise collide, so the mint keeps the last issued value and bumps
// past it when the clock has not moved.
const orderNumberPrefix = "FK"

var (
	mintMu     sync.Mutex
	lastMillis int64
)

func nextOrderMillis(now time.Time) int64 {
	mintMu.Lock()
	defer mintMu.Unlock()

	ms := now.UnixMilli()
	if ms <= lastMillis {
		ms = lastMillis + 1
	}
	lastMillis = ms
	return ms
}

// NewOrderNumber mints a unique customer-facing order number.
func NewOrderNumber(now time.Time) string {
	return fmt.Sprintf("%s%d", orderNumberPrefix, nextOrderMillis(now))
}
