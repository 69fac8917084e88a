package idle

import (
	"errors"
	"time"
)

// Timestamp layouts for the last-request session value. The stored form is a
// naive UTC timestamp with microsecond precision and no zone suffix, matching
// what earlier forum releases wrote into live sessions. The fallback layout
// accepts stamps whose fractional part was dropped entirely.
const (
	timestampLayout         = "2006-01-02 15:04:05.000000"
	timestampLayoutNoMicros = "2006-01-02 15:04:05"
)

// FormatTimestamp renders t as a naive UTC timestamp suitable for storing in
// the last-request session value.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// ParseTimestamp decodes a stamp produced by FormatTimestamp. Stamps without
// a fractional second are accepted as well. Anything else returns
// ErrBadTimestamp.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(timestampLayout, s, time.UTC); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(timestampLayoutNoMicros, s, time.UTC); err == nil {
		return t, nil
	}
	return time.Time{}, errors.Join(ErrBadTimestamp, errors.New("unrecognized format: "+s))
}
