package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/five82/svxdash/internal/state"
	"github.com/five82/svxdash/internal/talker"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second}, // Would be 32s, capped to 30s
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	// Verify that backoff never exceeds maxBackoff regardless of input
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 20; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

type fakeSource struct {
	mu     sync.Mutex
	err    error
	calls  int
	window talker.Window
}

func (f *fakeSource) Window(int) (talker.Window, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return talker.Window{}, f.err
	}
	return f.window, nil
}

func (f *fakeSource) Path() string { return "" }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPoller_RefreshUpdatesStoreAndListeners(t *testing.T) {
	src := &fakeSource{window: talker.Window{Records: []talker.ParsedRecord{{Index: 0, Message: "x"}}}}
	store := &state.Store{}
	p := NewPoller(src, store, time.Second, quietLogger())

	var got []talker.Window
	p.OnRefresh(func(w talker.Window) { got = append(got, w) })

	if err := p.Refresh(); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	snap := store.Snapshot()
	if !snap.HasWindow || snap.Window.Len() != 1 {
		t.Fatalf("store snapshot = %#v, want one record", snap)
	}
	if len(got) != 1 {
		t.Fatalf("listener called %d times, want 1", len(got))
	}
}

func TestPoller_RefreshErrorSkipsListeners(t *testing.T) {
	src := &fakeSource{err: errors.New("open log: permission denied")}
	store := &state.Store{}
	p := NewPoller(src, store, time.Second, quietLogger())

	called := false
	p.OnRefresh(func(talker.Window) { called = true })

	if err := p.Refresh(); err == nil {
		t.Fatal("Refresh returned nil error, want failure")
	}
	if called {
		t.Fatal("listener should not run on failure")
	}
	if snap := store.Snapshot(); snap.Failures != 1 || snap.Err == nil {
		t.Fatalf("store snapshot = %#v, want one recorded failure", snap)
	}
}

func TestPoller_RefreshesWhenLogChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "svxlink.log")
	if err := os.WriteFile(path, []byte("2025-03-01 12:00:00: ReflectorLogic: hello\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	engine := talker.New(talker.Config{Path: path, Location: time.UTC})
	store := &state.Store{}
	// The interval is long enough that only a file change can cause a second read.
	p := NewPoller(engine, store, time.Hour, quietLogger())

	refreshed := make(chan int, 8)
	p.OnRefresh(func(w talker.Window) { refreshed <- w.Len() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	p.Start(ctx)

	select {
	case n := <-refreshed:
		if n != 1 {
			t.Fatalf("initial window has %d records, want 1", n)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for initial refresh")
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if _, err := f.WriteString("2025-03-01 12:00:01: ReflectorLogic: Talker start on TG #12: W1ABC\n"); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	_ = f.Close()

	deadline := time.After(5 * time.Second)
	for {
		select {
		case n := <-refreshed:
			if n == 2 {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for refresh after log write")
		}
	}
}
