package schemas

import "time"

// SessionTrace places one trace on a session timeline. All timestamps
// inside the trace are relative to StartAt.
type SessionTrace struct {
	Trace   *Trace        `json:"trace"`
	StartAt time.Duration `json:"startAt"`
}

// Session is an ordered chain of traces over a shared timeline, separated
// by idle think time. StartAt values are strictly increasing.
type Session struct {
	Steps []SessionTrace `json:"steps"`
}

// Duration returns the offset at which the final step's last event fires.
func (s *Session) Duration() time.Duration {
	if len(s.Steps) == 0 {
		return 0
	}
	last := s.Steps[len(s.Steps)-1]
	return last.StartAt + last.Trace.Duration()
}
