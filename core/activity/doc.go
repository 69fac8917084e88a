// Package activity records per-user activity sessions: ordered [start, end]
// pairs marking login-to-logout windows.
//
// The Recorder runs after the downstream view has produced its response and
// applies one transition to the user's log: refresh the open entry in place,
// or open a new one when the last entry is closed. The log's wire format and
// its inherited open-entry convention are documented on the Entry type.
//
// Recording never affects the response. Users without an activity log are
// skipped, and store failures are logged and swallowed.
package activity
