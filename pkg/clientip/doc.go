// Package clientip extracts the originating client IP address from HTTP
// requests, handling proxy chains via the X-Forwarded-For header.
//
// The leftmost X-Forwarded-For entry is taken as the client address; without
// the header the direct peer address is used. The value is deliberately not
// validated: callers treat it as an opaque key for ban lookups and presence
// tracking, and the function never fails.
//
//	func handleRequest(w http.ResponseWriter, r *http.Request) {
//		ip := clientip.GetIP(r)
//		if banned, _ := bans.IsIPBanned(r.Context(), ip); banned {
//			http.Error(w, "Forbidden", http.StatusForbidden)
//			return
//		}
//		// Continue processing...
//	}
package clientip
