package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// unlockLimiterStore holds per-IP rate limiters for the unlock endpoint.
type unlockLimiterStore struct {
	limiters sync.Map // map[string]*unlockLimiterEntry (IP -> limiter)
	rps      float64
	burst    int
	now      func() time.Time
}

type unlockLimiterEntry struct {
	limiter    *rate.Limiter
	mu         sync.Mutex
	lastAccess time.Time
}

// UnlockRateLimitMiddleware throttles password guesses per client IP with a token bucket.
// Idle limiters are evicted in the background until ctx is done.
//
// Returns 429 Too Many Requests with a Retry-After header when the bucket is empty.
func UnlockRateLimitMiddleware(ctx context.Context, rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := &unlockLimiterStore{
		rps:   rps,
		burst: burst,
		now:   time.Now,
	}

	go store.cleanupStale(ctx, 5*time.Minute, time.Hour)

	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		limiter := store.getLimiter(clientIP)

		if !limiter.Allow() {
			reservation := limiter.Reserve()
			retryAfter := int(reservation.Delay().Seconds()) + 1
			reservation.Cancel()

			logger.Warn("unlock rate limit exceeded",
				slog.String("client_ip", clientIP),
				slog.Int("retry_after", retryAfter))

			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   "rate_limit_exceeded",
				"message": "Too many unlock attempts. Please retry after the specified delay.",
			})
			return
		}

		c.Next()
	}
}

func (s *unlockLimiterStore) getLimiter(ip string) *rate.Limiter {
	now := s.now()
	val, _ := s.limiters.LoadOrStore(ip, &unlockLimiterEntry{
		limiter:    rate.NewLimiter(rate.Limit(s.rps), s.burst),
		lastAccess: now,
	})

	entry := val.(*unlockLimiterEntry)
	entry.mu.Lock()
	entry.lastAccess = now
	entry.mu.Unlock()
	return entry.limiter
}

func (s *unlockLimiterStore) cleanupStale(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.evictIdle(maxIdle)
		}
	}
}

// evictIdle removes limiters not used within maxIdle.
func (s *unlockLimiterStore) evictIdle(maxIdle time.Duration) {
	threshold := s.now().Add(-maxIdle)
	s.limiters.Range(func(key, value interface{}) bool {
		entry := value.(*unlockLimiterEntry)
		entry.mu.Lock()
		stale := entry.lastAccess.Before(threshold)
		entry.mu.Unlock()

		if stale {
			s.limiters.Delete(key)
		}
		return true
	})
}
