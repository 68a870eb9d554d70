// Package guest enforces the daily request quota for unauthenticated callers.
//
// # Overview
//
// Guests get a fixed number of requests per UTC day, tracked entirely in
// memory. A guest is identified by the best available signal: an anonymous
// session id when present, otherwise the browser fingerprint combined with
// the client IP. Counters roll over automatically at the next UTC day
// boundary.
//
//	limiter := guest.NewLimiter(guest.DefaultMaxPerDay)
//	d := limiter.Check(fingerprint, ip, anonUserID)
//	if !d.Allowed {
//	    // reject with a rate-limit error; d.ResetAt says when to retry
//	}
//
// # Thread Safety
//
// A single mutex covers the whole check-then-increment sequence, so
// concurrent requests for the same guest are strictly serialized and the
// quota can never be over-admitted by a race.
//
// # Resource Growth
//
// Entries are never removed on the hot path, so the map grows with the
// number of distinct guests seen since startup. Sweep evicts entries whose
// window expired long ago; the run command schedules it periodically.
package guest
