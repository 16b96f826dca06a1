package state

import (
	"slices"
	"sync"
	"time"

	"github.com/five82/svxdash/internal/talker"
)

// staleAfter is the number of failed reads in a row before the last good
// window is shown as stale.
const staleAfter = 2

// Snapshot is what readers see of the log at one moment.
type Snapshot struct {
	Window    talker.Window
	HasWindow bool
	// ReadAt is when Window was read. CheckedAt is the latest attempt,
	// successful or not.
	ReadAt    time.Time
	CheckedAt time.Time
	Err       error
	Failures  int
}

// Stale reports whether Window is out of date because reads keep failing.
func (s Snapshot) Stale() bool {
	return s.Failures >= staleAfter
}

// Store holds the latest window for concurrent readers. The zero value is ready.
type Store struct {
	mu   sync.RWMutex
	snap Snapshot
	// now defaults to time.Now.
	now func() time.Time
}

func (s *Store) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

// Record stores a freshly read window and clears any failure state.
func (s *Store) Record(w talker.Window) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	readAt := w.ReadAt
	if readAt.IsZero() {
		readAt = now
	}
	s.snap = Snapshot{
		Window:    cloneWindow(w),
		HasWindow: true,
		ReadAt:    readAt,
		CheckedAt: now,
	}
}

// Fail records a failed read. The previous window stays in place.
func (s *Store) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap.Err = err
	s.snap.CheckedAt = s.clock()
	s.snap.Failures++
}

// Snapshot returns a copy that callers may modify freely.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snap
	snap.Window = cloneWindow(s.snap.Window)
	return snap
}

func cloneWindow(w talker.Window) talker.Window {
	w.Records = slices.Clone(w.Records)
	w.Sessions = slices.Clone(w.Sessions)
	return w
}
