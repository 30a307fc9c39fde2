package adapthttp

import (
	"errors"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Login attempts are limited per client address: a burst of 5, then one
// every 12 seconds.
const (
	loginRate  = rate.Limit(1.0 / 12)
	loginBurst = 5
)

// limiterIdle is how long a client's limiter survives without requests. It
// is well past the time a drained limiter needs to refill its burst.
const limiterIdle = 15 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64 // unix nanoseconds
}

type ipLimiter struct {
	limit    rate.Limit
	burst    int
	now      func() time.Time
	limiters sync.Map // map[string]*limiterEntry
}

func newIPLimiter(limit rate.Limit, burst int) *ipLimiter {
	return &ipLimiter{limit: limit, burst: burst, now: time.Now}
}

func (l *ipLimiter) allow(r *http.Request) bool {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	v, ok := l.limiters.Load(host)
	if !ok {
		v, _ = l.limiters.LoadOrStore(host, &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)})
	}
	e := v.(*limiterEntry)
	now := l.now()
	e.lastSeen.Store(now.UnixNano())
	return e.limiter.AllowN(now, 1)
}

// sweep forgets limiters last used before cutoff and reports how many.
func (l *ipLimiter) sweep(cutoff time.Time) int {
	n := 0
	l.limiters.Range(func(key, v any) bool {
		if v.(*limiterEntry).lastSeen.Load() < cutoff.UnixNano() {
			l.limiters.Delete(key)
			n++
		}
		return true
	})
	return n
}

// SweepLimiters drops per-client login limiters that have been idle for a
// while. Run it periodically.
func (s *Server) SweepLimiters() {
	if n := s.loginLimiter.sweep(s.loginLimiter.now().Add(-limiterIdle)); n > 0 {
		s.log.Debug("idle login limiters evicted", "count", n)
	}
}

func (s *Server) rateLimited(l *ipLimiter, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !l.allow(r) {
			s.log.Warn("rate limited", "path", r.URL.Path, "ip", r.RemoteAddr)
			writeError(w, http.StatusTooManyRequests, errors.New("too many attempts, try again later"))
			return
		}
		next(w, r)
	}
}
