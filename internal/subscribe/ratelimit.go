package subscribe

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// rateLimiter throttles repeated basic-auth failures per client address so
// the subscription token cannot be brute-forced quietly.
type rateLimiter struct {
	failures *gocache.Cache
	limit    int64
}

func newRateLimiter(limit int64, window time.Duration) *rateLimiter {
	return &rateLimiter{
		failures: gocache.New(window, 2*window),
		limit:    limit,
	}
}

// blocked reports whether key has exhausted its failure budget.
func (l *rateLimiter) blocked(key string) bool {
	v, ok := l.failures.Get(key)
	if !ok {
		return false
	}
	n, _ := v.(int64)
	return n >= l.limit
}

// fail records one auth failure for key.
func (l *rateLimiter) fail(key string) {
	if err := l.failures.Add(key, int64(1), gocache.DefaultExpiration); err != nil {
		l.failures.IncrementInt64(key, 1)
	}
}
