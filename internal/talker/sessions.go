package talker

import (
	"cmp"
	"slices"
	"time"
)

// Session is one transmission by a talker. StopIndex is -1 while the session
// is still open.
type Session struct {
	Key        Key
	StartIndex int
	StartTime  time.Time
	StopIndex  int
	StopTime   time.Time
	Active     bool
}

// Duration returns the completed length of the session, or the time elapsed
// since its start when it is still active. It never goes negative.
func (s Session) Duration(now time.Time) time.Duration {
	end := s.StopTime
	if s.Active {
		end = now
	}
	d := end.Sub(s.StartTime)
	if d < 0 {
		return 0
	}
	return d
}

// Seconds is Duration truncated to whole seconds.
func (s Session) Seconds(now time.Time) int {
	return int(s.Duration(now) / time.Second)
}

// Annotation marks a record index with a session duration.
type Annotation struct {
	Index   int
	Seconds int
	Active  bool
}

// Track pairs start and stop markers in a single forward pass. Each key has at
// most one pending session; a later start replaces an earlier one, and a stop
// without a pending start is ignored. Completed sessions come back in stop
// order followed by the still-open ones in start order.
func Track(records []ParsedRecord) []Session {
	pending := make(map[Key]Session)
	var sessions []Session

	for _, rec := range records {
		ev := Classify(rec.Message)
		switch ev.Kind {
		case KindStart:
			pending[ev.Key] = Session{
				Key:        ev.Key,
				StartIndex: rec.Index,
				StartTime:  rec.Timestamp,
				StopIndex:  -1,
			}
		case KindStop:
			s, open := pending[ev.Key]
			if !open {
				continue
			}
			s.StopIndex = rec.Index
			s.StopTime = rec.Timestamp
			sessions = append(sessions, s)
			delete(pending, ev.Key)
		}
	}

	open := make([]Session, 0, len(pending))
	for _, s := range pending {
		s.Active = true
		open = append(open, s)
	}
	slices.SortFunc(open, func(a, b Session) int {
		return cmp.Compare(a.StartIndex, b.StartIndex)
	})
	return append(sessions, open...)
}

// Reconstruct runs Track and turns the sessions into per-index annotations:
// completed sessions annotate their stop record, active ones their start
// record with the time elapsed until now.
func Reconstruct(records []ParsedRecord, now time.Time) []Annotation {
	return annotate(Track(records), now)
}

func annotate(sessions []Session, now time.Time) []Annotation {
	out := make([]Annotation, 0, len(sessions))
	for _, s := range sessions {
		idx := s.StopIndex
		if s.Active {
			idx = s.StartIndex
		}
		out = append(out, Annotation{Index: idx, Seconds: s.Seconds(now), Active: s.Active})
	}
	return out
}
