// Package idle logs out authenticated sessions that have gone quiet.
//
// Each served request stamps the session with the current time under the
// "lastRequest" value key. On the next request the Enforcer compares that
// stamp against its threshold (90 seconds by default, tuned for clients that
// send a periodic beacon request) and, when exceeded, logs the session out
// and sets the "autoLogout" flag so the UI can explain the sign-out.
//
// Usage:
//
//	enforcer := idle.NewEnforcer(idle.WithThreshold(2 * time.Minute))
//
//	forced := enforcer.Enforce(ctx, sess)
//	if forced {
//		// tear down presence or other per-user state
//	}
//
// The timestamp codec is deliberately tolerant: stamps are naive UTC strings
// with microsecond precision, stamps without fractions still parse, and a
// stamp that cannot be parsed at all is replaced with a fresh one instead of
// counting as idle time.
package idle
