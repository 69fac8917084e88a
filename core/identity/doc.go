// Package identity models the request principal and enforces ban policy.
//
// Every request carries exactly one Principal: an authenticated user or the
// anonymous principal. The Gate resolves the effective principal for a
// request by demoting banned, non-staff users to anonymous and flagging their
// session for invalidation. Ban rules themselves are evaluated by an external
// BanService collaborator; lookups that fail are treated as not banned for
// that request (fail-open) and logged.
//
//	gate := identity.NewGate(banService, identity.WithGateLogger(logger))
//
//	decision := gate.Resolve(ctx, rawPrincipal, clientIP, cacheVersions)
//	if decision.ForcedLogout {
//		sess.Logout()
//	}
//	principal := decision.Principal
package identity
