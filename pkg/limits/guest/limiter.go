package guest

import (
	"strings"
	"sync"
	"time"
)

// DefaultMaxPerDay is the number of requests a guest may make per UTC day.
const DefaultMaxPerDay = 5

// dayMillis is the length of one day in milliseconds.
const dayMillis = 24 * 60 * 60 * 1000

// Reason codes returned with every admission decision. Callers branch on
// these for observability; the values are stable.
const (
	// ReasonOK means the request was admitted, whether it opened a fresh
	// window or counted against an existing one.
	ReasonOK = "ok"

	// ReasonLimitExceeded means the guest exhausted today's quota.
	ReasonLimitExceeded = "limit_exceeded"
)

// Decision is the outcome of a quota check.
type Decision struct {
	// Allowed indicates whether the request may proceed.
	Allowed bool

	// Remaining is how many requests the guest has left today.
	Remaining int

	// ResetAt is when the quota resets, in milliseconds since the Unix
	// epoch. On rejection it tells the caller when to retry.
	ResetAt int64

	// Reason is one of the Reason* codes above.
	Reason string
}

// entry tracks one guest's usage inside the current day window.
type entry struct {
	count   int
	resetAt int64
}

// Limiter enforces the per-guest daily quota.
//
// All state lives in memory; restarting the process resets every counter.
// The zero value is not usable, construct with NewLimiter.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]entry
	max     int
	now     func() time.Time
}

// NewLimiter creates a limiter admitting up to maxPerDay requests per guest
// per UTC day. Values below 1 fall back to DefaultMaxPerDay.
func NewLimiter(maxPerDay int) *Limiter {
	return NewLimiterWithClock(maxPerDay, time.Now)
}

// NewLimiterWithClock creates a limiter with an injected time source.
// Tests use this to simulate day-boundary rollover.
func NewLimiterWithClock(maxPerDay int, now func() time.Time) *Limiter {
	if maxPerDay < 1 {
		maxPerDay = DefaultMaxPerDay
	}
	return &Limiter{
		entries: make(map[string]entry),
		max:     maxPerDay,
		now:     now,
	}
}

// Key derives the tracking key for a guest from the available identity
// signals. Empty strings mean the signal is absent.
//
// An anonymous session id starting with "anon-" wins over everything else
// because it is the most durable signal across a guest's visit. The
// fallback combines fingerprint and IP, each defaulting to "unknown", so
// fully anonymous requests deliberately share one bucket.
func Key(fingerprint, ip, anonUserID string) string {
	if strings.HasPrefix(anonUserID, "anon-") {
		return "anon:" + anonUserID
	}
	if fingerprint == "" {
		fingerprint = "unknown"
	}
	if ip == "" {
		ip = "unknown"
	}
	return fingerprint + "|" + ip
}

// Check performs the atomic check-and-increment for one incoming request.
//
// The lookup, decision, and mutation happen under a single lock
// acquisition so two concurrent requests from the same guest can never
// both claim the last quota slot. The critical section touches only the
// in-memory map; there is no I/O and no error path.
func (l *Limiter) Check(fingerprint, ip, anonUserID string) Decision {
	key := Key(fingerprint, ip, anonUserID)
	now := l.now().UnixMilli()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, exists := l.entries[key]
	if !exists || now >= e.resetAt {
		// First request of the tracking window, or the previous window
		// expired. The triggering request is admitted, so the fresh
		// entry starts at 1, not 0.
		resetAt := startOfNextDay(now)
		l.entries[key] = entry{count: 1, resetAt: resetAt}
		return Decision{
			Allowed:   true,
			Remaining: l.max - 1,
			ResetAt:   resetAt,
			Reason:    ReasonOK,
		}
	}

	if e.count >= l.max {
		return Decision{
			Allowed:   false,
			Remaining: 0,
			ResetAt:   e.resetAt,
			Reason:    ReasonLimitExceeded,
		}
	}

	e.count++
	l.entries[key] = e
	return Decision{
		Allowed:   true,
		Remaining: l.max - e.count,
		ResetAt:   e.resetAt,
		Reason:    ReasonOK,
	}
}

// Max returns the configured daily quota.
func (l *Limiter) Max() int {
	return l.max
}

// Size returns the number of tracked guest keys.
func (l *Limiter) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Sweep removes entries whose window expired more than grace ago and
// returns how many were evicted. Entries inside the grace period are kept
// so a guest straddling midnight is not re-created immediately.
func (l *Limiter) Sweep(grace time.Duration) int {
	cutoff := l.now().UnixMilli() - grace.Milliseconds()

	l.mu.Lock()
	defer l.mu.Unlock()

	evicted := 0
	for key, e := range l.entries {
		if e.resetAt < cutoff {
			delete(l.entries, key)
			evicted++
		}
	}
	return evicted
}

// startOfNextDay returns the start of the next epoch-aligned UTC day
// strictly after the day containing nowMillis.
func startOfNextDay(nowMillis int64) int64 {
	return (nowMillis + dayMillis) / dayMillis * dayMillis
}
