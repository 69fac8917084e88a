// Package presence tracks which forum users are currently online.
//
// A user owns at most one Record. The Tracker drives the lifecycle across the
// two middleware hooks of a request:
//
//   - request start: an authenticated user is fetched-or-started (Track);
//     first sight creates the record, concurrent first sight is idempotent.
//   - response finalize: a user still authenticated gets a last-seen refresh
//     (UpdateTracker); a user who went anonymous during the request has the
//     record deleted (StopTracking).
//
// Tracking is best-effort: store failures after request start are logged and
// never affect the response.
//
// Store implementations: MemoryStore (mutex-guarded map), RedisStore (hash
// per user, optional TTL for crash cleanup), PostgresStore (forum_online
// table, upsert-guarded creation).
package presence
