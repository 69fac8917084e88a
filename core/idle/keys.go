package idle

// Session value keys used by the idle-timeout enforcer. The names match the
// keys earlier forum releases stored in live sessions, so deployed sessions
// keep working across upgrades.
const (
	// KeyLastRequest holds the timestamp of the last request served for the
	// session, encoded with FormatTimestamp.
	KeyLastRequest = "lastRequest"

	// KeyAutoLogout is set to "true" on the session when a logout was forced
	// by the idle timeout, letting the presentation layer distinguish it
	// from an explicit sign-out.
	KeyAutoLogout = "autoLogout"
)
