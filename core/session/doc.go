// Package session provides session management for forum request handling.
//
// This package implements a session system that supports both anonymous and
// authenticated visitors with pluggable persistence. Sessions use
// cryptographically secure tokens and support automatic expiration, token
// rotation on authentication, and a string key/value store for
// request-scoped flags that must survive across requests.
//
// # Core Components
//
// The package provides three main types:
//
//   - Session: Session container with identity, metadata, and values
//   - Manager: Coordinates session lifecycle operations
//   - Store: Interface for session persistence (memory, Redis, etc.)
//
// # Basic Usage
//
// Create a session manager backed by Redis:
//
//	import "github.com/dmitrymomot/forumkit/core/session"
//
//	store := session.NewRedisStore(redisClient)
//	manager := session.NewManager(store,
//		session.WithTTL(24*time.Hour),
//		session.WithTouchInterval(5*time.Minute),
//	)
//
// Load a session for an incoming request:
//
//	sess, err := manager.Load(r.Context(), token, session.NewSessionParams{
//		IP:        clientip.GetIP(r),
//		UserAgent: r.UserAgent(),
//	})
//	if err != nil {
//		return err
//	}
//
//	if sess.IsAuthenticated() {
//		// serve the signed-in user
//	}
//
//	sess.SetValue("lastRequest", stamp)
//
//	// Persist changes after the handler runs.
//	if err := manager.Store(r.Context(), sess); err != nil {
//		return err
//	}
//
// # Authentication Flow
//
// Anonymous sessions become authenticated through token rotation, which
// prevents session fixation attacks:
//
//	if err := sess.Authenticate(userID); err != nil {
//		return err
//	}
//	// sess.Token is now a fresh token; the old one is invalidated on save.
//
// Logout marks the session deleted; Manager.Store removes it from the
// backing store:
//
//	sess.Logout()
//	err := manager.Store(ctx, sess)
//
// # Expiration and Cleanup
//
// Sessions track their own expiry. Manager.Load transparently replaces an
// expired session with a fresh anonymous one, and a periodic sweep can reap
// leftovers from stores that do not expire keys natively:
//
//	removed, err := manager.CleanupExpired(ctx)
package session
