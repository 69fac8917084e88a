// Package middleware provides the request-processing chain for forum
// traffic: client IP resolution, session loading, identity and ban
// enforcement, online presence tracking, idle-timeout logout, and activity
// recording.
//
// All middleware are generic over handler.Context and follow the same
// pattern: a constructor with sensible defaults and a WithConfig variant
// accepting a Config struct with an optional Skip function. Values placed in
// the request context are read back with the matching GetX helper.
//
// The intended chain order is:
//
//	chain := handler.Chain([]handler.Middleware[*reqctx.Context]{
//		middleware.RealIP[*reqctx.Context](),
//		middleware.Session[*reqctx.Context](sessionManager),
//		middleware.Identity[*reqctx.Context](gate, users),
//		middleware.Presence[*reqctx.Context](tracker),
//		middleware.IdleTimeout[*reqctx.Context](enforcer),
//		middleware.Activity[*reqctx.Context](recorder),
//	}, endpoint)
//
// On the way in, each request gets its client IP, session, and effective
// principal resolved before presence is registered. On the way out the
// activity touch is recorded first, then the idle policy runs, then presence
// reconciles against the (possibly demoted) principal, and finally the
// session is persisted. That ordering is what makes a forced logout, whether
// from a ban or from idleness, reach every layer within a single request.
package middleware
