package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/sekolahku/attendance-backend-go/internal/handler/http/response"
)

// TokenBucket is an in-memory per-client rate limiter for the submission
// endpoint. State is process-local; a multi-instance deployment would move
// this behind a shared store.
type TokenBucket struct {
	capacity int
	rate     int // refill per minute
	mu       sync.Mutex
	state    map[string]*bucket
}

type bucket struct {
	tokens int
	last   time.Time
}

// NewTokenBucket creates a limiter holding capacity tokens refilled at
// perMinute tokens per minute.
func NewTokenBucket(capacity, perMinute int) *TokenBucket {
	if capacity <= 0 {
		capacity = perMinute
	}
	return &TokenBucket{
		capacity: capacity,
		rate:     perMinute,
		state:    make(map[string]*bucket),
	}
}

// Handler enforces the per-IP limit as chi middleware.
func (l *TokenBucket) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil || ip == "" {
			ip = r.RemoteAddr
		}
		if !l.allow(ip) {
			response.TooManyRequests(w, "Too many requests, slow down")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *TokenBucket) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.state[key]
	now := time.Now()
	if !ok {
		l.state[key] = &bucket{tokens: l.capacity - 1, last: now}
		return true
	}

	refill := int(now.Sub(b.last).Minutes() * float64(l.rate))
	if refill > 0 {
		b.tokens += refill
		if b.tokens > l.capacity {
			b.tokens = l.capacity
		}
		b.last = now
	}
	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}
