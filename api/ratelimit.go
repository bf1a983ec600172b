package api

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/suresh-yadav/portfolio-backend/errs"
)

// rateLimiter is a fixed-window, in-memory limiter keyed by client IP. Expired windows
// are swept on the request path, at most once per window.
type rateLimiter struct {
	name      string
	limit     int
	window    time.Duration
	now       func() time.Time
	responder Responder

	mu        sync.Mutex
	visitors  map[string]*visitor
	nextSweep time.Time
}

type visitor struct {
	windowStart time.Time
	count       int
}

func newRateLimiter(name string, limit int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		name:      name,
		limit:     limit,
		window:    window,
		now:       time.Now,
		responder: NewResponder(log.With().Str("handlerName", "rateLimiter").Str("limiter", name).Logger()),
		visitors:  make(map[string]*visitor),
	}
}

// allow counts one request for key. When the key is over its limit it returns false and
// how long until the window resets.
func (rl *rateLimiter) allow(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.After(rl.nextSweep) {
		for k, v := range rl.visitors {
			if now.Sub(v.windowStart) >= rl.window {
				delete(rl.visitors, k)
			}
		}
		rl.nextSweep = now.Add(rl.window)
	}

	v, ok := rl.visitors[key]
	if !ok || now.Sub(v.windowStart) >= rl.window {
		rl.visitors[key] = &visitor{windowStart: now, count: 1}
		return true, 0
	}
	v.count++
	if v.count > rl.limit {
		return false, v.windowStart.Add(rl.window).Sub(now)
	}
	return true, 0
}

func (rl *rateLimiter) limitRequests(next http.Handler) http.Handler {
	if rl.limit <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, retryAfter := rl.allow(clientIP(r))
		if !ok {
			w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Round(time.Second).Seconds())))
			rl.responder.WriteError(w, errs.NewRateLimitError(rl.name, retryAfter))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP is the host part of RemoteAddr, which middleware.RealIP has already
// replaced with the forwarded address when one was sent.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
