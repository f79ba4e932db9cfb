package auth

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LoginLimiter rate-limits login attempts per IP address. Only failed
// attempts consume budget, so the admin is never locked out by successful
// logins. Simple in-memory implementation, not shared between instances.
type LoginLimiter struct {
	mu       sync.Mutex
	visitors map[string]*loginVisitor
	limit    rate.Limit
	burst    int
	ttl      time.Duration
}

type loginVisitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLoginLimiter creates a LoginLimiter that allows burst failed attempts
// per IP, refilled at perMinute per minute. The background eviction of idle
// entries stops when ctx is cancelled.
func NewLoginLimiter(ctx context.Context, perMinute float64, burst int) *LoginLimiter {
	l := &LoginLimiter{
		visitors: make(map[string]*loginVisitor),
		limit:    rate.Limit(perMinute / 60.0),
		burst:    burst,
		ttl:      15 * time.Minute,
	}
	go l.cleanup(ctx)
	return l
}

// Check reports whether the IP still has attempt budget. It does not consume
// any; call Record separately on failure.
func (l *LoginLimiter) Check(ip string) bool {
	return l.visitor(ip).Tokens() >= 1
}

// Record burns one unit of budget after a failed login attempt.
func (l *LoginLimiter) Record(ip string) {
	l.visitor(ip).Allow()
}

func (l *LoginLimiter) visitor(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.visitors[ip]
	if !ok {
		v = &loginVisitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

// cleanup periodically evicts visitors that have been idle longer than the
// TTL, so the map does not grow with every IP that ever failed a login.
func (l *LoginLimiter) cleanup(ctx context.Context) {
	ticker := time.NewTicker(l.ttl / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			l.mu.Lock()
			for ip, v := range l.visitors {
				if now.Sub(v.lastSeen) > l.ttl {
					delete(l.visitors, ip)
				}
			}
			l.mu.Unlock()
		}
	}
}
