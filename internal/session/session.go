// Package session records completed work/break cycles.
package session

import (
	"encoding/json"
	"time"
)

// FileName is the sessions file inside the data folder.
const FileName = "sessions.json"

// Epoch is the timestamp of sessions constructed without one.
var Epoch = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

// Session is one completed work+break cycle. Timestamp is the completion
// time in UTC with second precision, matching the on-disk form.
type Session struct {
	Timestamp time.Time
	WorkTime  uint32
	BreakTime uint32
}

type sessionJSON struct {
	Timestamp int64  `json:"timestamp"`
	WorkTime  uint32 `json:"work_time"`
	BreakTime uint32 `json:"break_time"`
}

// New returns a Session stamped with Epoch.
func New(workTime, breakTime uint32) Session {
	return NewAt(Epoch, workTime, breakTime)
}

// NewAt returns a Session completed at ts.
func NewAt(ts time.Time, workTime, breakTime uint32) Session {
	return Session{
		Timestamp: ts.UTC().Truncate(time.Second),
		WorkTime:  workTime,
		BreakTime: breakTime,
	}
}

// MarshalJSON encodes the timestamp as Unix seconds.
func (s Session) MarshalJSON() ([]byte, error) {
	return json.Marshal(sessionJSON{
		Timestamp: s.Timestamp.Unix(),
		WorkTime:  s.WorkTime,
		BreakTime: s.BreakTime,
	})
}

// UnmarshalJSON decodes a timestamp stored as Unix seconds.
func (s *Session) UnmarshalJSON(data []byte) error {
	var raw sessionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.Timestamp = time.Unix(raw.Timestamp, 0).UTC()
	s.WorkTime = raw.WorkTime
	s.BreakTime = raw.BreakTime
	return nil
}

// List holds sessions in completion order.
type List struct {
	Sessions []Session `json:"sessions"`
}

// NewList returns a List holding sessions, or an empty one for nil.
func NewList(sessions []Session) List {
	if sessions == nil {
		sessions = []Session{}
	}
	return List{Sessions: sessions}
}

// Append adds s after every existing entry.
func (l *List) Append(s Session) {
	l.Sessions = append(l.Sessions, s)
}

// Len returns the number of sessions.
func (l List) Len() int {
	return len(l.Sessions)
}

// TotalWorkMinutes sums WorkTime over all sessions.
func (l List) TotalWorkMinutes() uint64 {
	var total uint64
	for _, s := range l.Sessions {
		total += uint64(s.WorkTime)
	}
	return total
}
