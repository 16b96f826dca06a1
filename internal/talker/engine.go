package talker

import (
	"fmt"
	"time"

	"github.com/five82/svxdash/internal/logtail"
)

// DefaultLines is the window size used when none is configured or requested.
const DefaultLines = 30

// Config carries everything the engine needs. It replaces process-wide
// settings so several engines can run side by side.
type Config struct {
	Path     string
	Lines    int
	Layouts  []string
	Location *time.Location
	// Now defaults to time.Now. Tests pin it.
	Now func() time.Time
}

// Engine reconstructs talker sessions from the tail of the reflector log.
// It keeps no state between calls.
type Engine struct {
	cfg    Config
	parser Parser
}

// New builds an engine, filling unset fields with defaults.
func New(cfg Config) *Engine {
	if cfg.Lines <= 0 {
		cfg.Lines = DefaultLines
	}
	if len(cfg.Layouts) == 0 {
		cfg.Layouts = DefaultLayouts
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Engine{
		cfg:    cfg,
		parser: Parser{Layouts: cfg.Layouts, Location: cfg.Location},
	}
}

// Path returns the log file the engine reads.
func (e *Engine) Path() string {
	return e.cfg.Path
}

// Now returns the engine's current time.
func (e *Engine) Now() time.Time {
	return e.cfg.Now()
}

// Window reads the last lines of the log and pairs the talker markers in it.
// A non-positive count uses the configured default. Only I/O failures are
// returned; unparseable lines are dropped.
func (e *Engine) Window(lines int) (Window, error) {
	if lines <= 0 {
		lines = e.cfg.Lines
	}
	text, err := logtail.Tail(e.cfg.Path, lines)
	if err != nil {
		return Window{}, fmt.Errorf("tail %s: %w", e.cfg.Path, err)
	}
	records := e.parser.ParseAll(Split(text))
	return Window{
		Records:  records,
		Sessions: Track(records),
		ReadAt:   e.cfg.Now(),
	}, nil
}

// Entries is shorthand for Window followed by Window.Entries at the current time.
func (e *Engine) Entries(lines int, order Order) ([]Entry, error) {
	w, err := e.Window(lines)
	if err != nil {
		return nil, err
	}
	return w.Entries(e.cfg.Now(), order), nil
}

// Window is the parsed and paired content of one read. Active durations are
// not stored; they are computed against the time passed to Entries.
type Window struct {
	Records  []ParsedRecord
	Sessions []Session
	ReadAt   time.Time
}

// Entries assembles the window at now.
func (w Window) Entries(now time.Time, order Order) []Entry {
	return Assemble(w.Records, annotate(w.Sessions, now), order)
}

// Active returns the sessions still open at the end of the window, oldest first.
func (w Window) Active() []Session {
	var out []Session
	for _, s := range w.Sessions {
		if s.Active {
			out = append(out, s)
		}
	}
	return out
}

// Completed returns the closed sessions in the order they ended.
func (w Window) Completed() []Session {
	var out []Session
	for _, s := range w.Sessions {
		if !s.Active {
			out = append(out, s)
		}
	}
	return out
}

// Len reports the number of parsed records.
func (w Window) Len() int {
	return len(w.Records)
}
