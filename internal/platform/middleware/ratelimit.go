// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/constants"
	"github.com/taibuivan/yamdb/internal/platform/respond"
)

// RateLimitPolicy sizes the token bucket kept per client IP.
type RateLimitPolicy struct {
	PerSecond float64
	Burst     int
	IdleTTL   time.Duration
}

// DefaultRateLimitPolicy is the policy of the public API.
func DefaultRateLimitPolicy() RateLimitPolicy {
	return RateLimitPolicy{
		PerSecond: constants.DefaultRateLimitRPS,
		Burst:     constants.DefaultRateLimitBurst,
		IdleTTL:   constants.RateLimitClientTTL,
	}
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiter owns one bucket per client IP.
type ipLimiter struct {
	policy  RateLimitPolicy
	mu      sync.Mutex
	buckets map[string]*bucket
}

// wait reports how long ip must wait before its next request is admitted.
// Zero admits the request now and spends a token.
func (limiter *ipLimiter) wait(ip string, now time.Time) time.Duration {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	entry, found := limiter.buckets[ip]
	if !found {
		entry = &bucket{limiter: rate.NewLimiter(rate.Limit(limiter.policy.PerSecond), limiter.policy.Burst)}
		limiter.buckets[ip] = entry
	}
	entry.lastSeen = now

	reservation := entry.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return time.Second
	}
	delay := reservation.DelayFrom(now)
	if delay > 0 {
		reservation.CancelAt(now)
	}
	return delay
}

// sweep forgets buckets idle for longer than the policy TTL.
func (limiter *ipLimiter) sweep(now time.Time) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	for ip, entry := range limiter.buckets {
		if now.Sub(entry.lastSeen) > limiter.policy.IdleTTL {
			delete(limiter.buckets, ip)
		}
	}
}

// RateLimit applies [DefaultRateLimitPolicy]. See [RateLimitWith].
func RateLimit(context context.Context) func(http.Handler) http.Handler {
	return RateLimitWith(context, DefaultRateLimitPolicy())
}

// RateLimitWith throttles each client IP with a token bucket and answers
// RATE_LIMITED with a Retry-After header once the bucket is empty.
//
// Each call owns its buckets. A sweeper goroutine runs until context is done.
func RateLimitWith(context context.Context, policy RateLimitPolicy) func(http.Handler) http.Handler {
	limiter := &ipLimiter{policy: policy, buckets: make(map[string]*bucket)}

	go func() {
		ticker := time.NewTicker(constants.RateLimitCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case now := <-ticker.C:
				limiter.sweep(now)
			case <-context.Done():
				return
			}
		}
	}()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			delay := limiter.wait(RealIP(request), time.Now())
			if delay > 0 {
				seconds := int(math.Ceil(delay.Seconds()))
				writer.Header().Set(constants.HeaderRetryAfter, strconv.Itoa(seconds))
				respond.Error(writer, request, apperr.RateLimited(seconds))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
