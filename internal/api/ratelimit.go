package api

import (
	"net/http"
	"strconv"
	"sync"
	"time"
)

// RateLimit is a snapshot of the hourly quota reported by the API via the
// X-RateLimit-Limit and X-RateLimit-Remaining response headers.
type RateLimit struct {
	Limit      int
	Remaining  int
	ObservedAt time.Time
}

// Known returns true if at least one rate-limited response has been seen.
func (r RateLimit) Known() bool {
	return !r.ObservedAt.IsZero()
}

// rateLimitTracker records the latest rate limit headers. Responses can
// complete out of order across goroutines; the tracker keeps whichever
// arrived last, which is close enough for quota display purposes.
type rateLimitTracker struct {
	mu   sync.Mutex
	last RateLimit
}

func (t *rateLimitTracker) update(h http.Header) {
	limit, lerr := strconv.Atoi(h.Get("X-RateLimit-Limit"))
	remaining, rerr := strconv.Atoi(h.Get("X-RateLimit-Remaining"))
	if lerr != nil && rerr != nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if lerr == nil {
		t.last.Limit = limit
	}
	if rerr == nil {
		t.last.Remaining = remaining
	}
	t.last.ObservedAt = time.Now()
}

func (t *rateLimitTracker) snapshot() RateLimit {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last
}
