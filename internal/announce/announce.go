// Package announce publishes talker transitions to NATS.
//
// Delivery is best effort: transitions are derived by diffing successive
// windows, so a session that starts and stops between two refreshes yields
// only a stop, and a restart replays nothing from before the first window.
package announce

import (
	"log/slog"
	"time"

	"github.com/five82/svxdash/internal/talker"
)

// Publisher sends a JSON-encodable payload to a subject.
type Publisher interface {
	Publish(subject string, data any) error
}

// Transition is the payload published for a talker start or stop.
type Transition struct {
	Event           string     `json:"event"`
	TG              string     `json:"tg"`
	Callsign        string     `json:"callsign"`
	Started         time.Time  `json:"started"`
	Stopped         *time.Time `json:"stopped,omitempty"`
	DurationSeconds int        `json:"duration_seconds"`
}

type sessionID struct {
	key   talker.Key
	start time.Time
}

// Tracker remembers which sessions have already been announced.
type Tracker struct {
	primed bool
	active map[sessionID]struct{}
	done   map[sessionID]struct{}
}

// Diff returns the transitions that appeared since the previous window. The
// first call only records the current state.
func (t *Tracker) Diff(w talker.Window, now time.Time) []Transition {
	active := make(map[sessionID]struct{})
	done := make(map[sessionID]struct{})
	var out []Transition

	for _, s := range w.Sessions {
		id := sessionID{key: s.Key, start: s.StartTime}
		if s.Active {
			active[id] = struct{}{}
			if _, seen := t.active[id]; t.primed && !seen {
				out = append(out, transition("start", s, now))
			}
			continue
		}
		done[id] = struct{}{}
		if _, seen := t.done[id]; t.primed && !seen {
			out = append(out, transition("stop", s, now))
		}
	}

	t.active = active
	t.done = done
	t.primed = true
	return out
}

func transition(event string, s talker.Session, now time.Time) Transition {
	tr := Transition{
		Event:           event,
		TG:              s.Key.Channel,
		Callsign:        s.Key.Identity,
		Started:         s.StartTime,
		DurationSeconds: s.Seconds(now),
	}
	if !s.Active {
		stopped := s.StopTime
		tr.Stopped = &stopped
	}
	return tr
}

// Announcer publishes transitions for each window it is handed.
type Announcer struct {
	pub     Publisher
	prefix  string
	now     func() time.Time
	logger  *slog.Logger
	tracker Tracker
}

// NewAnnouncer publishes under "<prefix>.talker.start" and "<prefix>.talker.stop".
func NewAnnouncer(pub Publisher, prefix string, logger *slog.Logger) *Announcer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Announcer{pub: pub, prefix: prefix, now: time.Now, logger: logger}
}

// Subject returns the subject used for an event name.
func (a *Announcer) Subject(event string) string {
	return a.prefix + ".talker." + event
}

// Handle diffs the window against the previous one and publishes the result.
// Calls must not overlap; the poller serialises them.
func (a *Announcer) Handle(w talker.Window) {
	for _, tr := range a.tracker.Diff(w, a.now()) {
		subject := a.Subject(tr.Event)
		if err := a.pub.Publish(subject, tr); err != nil {
			a.logger.Warn("announce failed", "subject", subject, "callsign", tr.Callsign, "error", err)
			continue
		}
		a.logger.Debug("announced", "subject", subject, "tg", tr.TG, "callsign", tr.Callsign)
	}
}
