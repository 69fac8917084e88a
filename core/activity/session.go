package activity

import (
	"encoding/json"
	"time"
)

// Entry is one activity session: a [start, end] pair of nullable timestamps.
//
// The open-entry convention is inherited from the legacy system and preserved
// for wire compatibility: an entry is open while Start is null, and End then
// holds the last-touched time rather than a logout time. The open entry is
// replaced wholesale on every request; a start timestamp only appears once
// the entry has been closed by the logout flow.
type Entry struct {
	Start *time.Time
	End   *time.Time
}

// IsOpen reports whether the entry represents the still-running session.
func (e Entry) IsOpen() bool {
	return e.Start == nil
}

// MarshalJSON encodes the entry as a 2-element array: [start|null, end|null].
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]*time.Time{e.Start, e.End})
}

// UnmarshalJSON decodes the 2-element array form.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var pair [2]*time.Time
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	e.Start, e.End = pair[0], pair[1]
	return nil
}

// Log is a user's ordered sequence of activity sessions, oldest first.
// At most the final entry is open.
type Log []Entry

// Touch records a request finalized at now and returns the updated log.
//
// An empty log is returned untouched: users without activity history are
// skipped entirely. When the last entry is open it is replaced by
// [null, now], refreshing the last-touched time in place; otherwise a fresh
// open entry [null, now] is appended.
func (l Log) Touch(now time.Time) Log {
	if len(l) == 0 {
		return l
	}

	if l[len(l)-1].IsOpen() {
		l[len(l)-1] = Entry{End: &now}
		return l
	}

	return append(l, Entry{End: &now})
}

// Clone returns a deep-enough copy for safe concurrent reads.
func (l Log) Clone() Log {
	if l == nil {
		return nil
	}
	out := make(Log, len(l))
	copy(out, l)
	return out
}
