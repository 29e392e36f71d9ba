package services

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig holds a token-bucket budget: Requests per Window
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// DefaultOTPRateLimitConfig limits OTP requests to 3 per phone per 10 minutes
func DefaultOTPRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Requests: 3,
		Window:   10 * time.Minute,
	}
}

// RateLimitService keeps one token bucket per key (phone or client IP)
type RateLimitService struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	limit    rate.Limit
	burst    int
	idleTTL  time.Duration
	now      func() time.Time
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimitService creates a keyed rate limiter
func NewRateLimitService(cfg RateLimitConfig) *RateLimitService {
	if cfg.Requests < 1 {
		cfg.Requests = 1
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	return &RateLimitService{
		limiters: make(map[string]*limiterEntry),
		limit:    rate.Every(cfg.Window / time.Duration(cfg.Requests)),
		burst:    cfg.Requests,
		idleTTL:  2 * cfg.Window,
		now:      time.Now,
	}
}

// RateLimitError represents a rate limit exceeded error
type RateLimitError struct {
	Message    string
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return e.Message
}

// Allow consumes one token for key and reports whether the request may proceed
func (s *RateLimitService) Allow(key string) bool {
	return s.Reserve(key) == nil
}

// Reserve consumes one token for key. It returns a RateLimitError with the
// wait time when the bucket is empty.
func (s *RateLimitService) Reserve(key string) *RateLimitError {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry, ok := s.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.limiters[key] = entry
	}
	entry.lastSeen = now

	r := entry.limiter.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return &RateLimitError{
			Message:    "too many requests, please try again later",
			RetryAfter: delay,
		}
	}
	return nil
}

// Cleanup drops limiters idle for longer than twice the window and returns
// how many were removed
func (s *RateLimitService) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.idleTTL)
	removed := 0
	for key, entry := range s.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(s.limiters, key)
			removed++
		}
	}
	return removed
}

// Size returns the number of tracked keys
func (s *RateLimitService) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.limiters)
}

// RunCleanup calls Cleanup every interval until ctx is done
func (s *RateLimitService) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Cleanup()
		}
	}
}
