// Package reqctx provides the default handler.Context implementation: an
// explicit per-request state container threaded through the middleware chain.
//
// Middleware stores request-scoped data (client IP, effective principal,
// presence handle) under unexported typed keys via SetValue and reads it back
// through package-level helpers. The store is created per request, so stale
// values from a previous request are structurally impossible.
package reqctx
