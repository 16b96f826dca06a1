package app

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/five82/svxdash/internal/state"
	"github.com/five82/svxdash/internal/talker"
)

const (
	defaultPollInterval = 2 * time.Second
	maxBackoff          = 30 * time.Second
	// changeSettle lets a burst of writes land before the window is re-read.
	changeSettle = 200 * time.Millisecond
)

// WindowSource produces a fresh talker window. *talker.Engine implements it.
type WindowSource interface {
	Window(lines int) (talker.Window, error)
	Path() string
}

// Listener is called with every successfully read window.
type Listener func(talker.Window)

// Poller refreshes the store from the reflector log at a fixed cadence, and
// early when the log file changes.
type Poller struct {
	source   WindowSource
	store    *state.Store
	interval time.Duration
	logger   *slog.Logger

	mu        sync.Mutex
	listeners []Listener
	// refreshMu keeps listeners from running concurrently.
	refreshMu sync.Mutex
}

// NewPoller builds a poller. A non-positive interval uses the default.
func NewPoller(source WindowSource, store *state.Store, interval time.Duration, logger *slog.Logger) *Poller {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{source: source, store: store, interval: interval, logger: logger}
}

// OnRefresh registers a listener for successful refreshes.
func (p *Poller) OnRefresh(l Listener) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, l)
}

// Start launches the background loop. It returns immediately.
func (p *Poller) Start(ctx context.Context) {
	go p.run(ctx)
}

// Refresh reads the window once and publishes it to the store and listeners.
func (p *Poller) Refresh() error {
	p.refreshMu.Lock()
	defer p.refreshMu.Unlock()

	window, err := p.source.Window(0)
	if err != nil {
		p.store.Fail(err)
		return err
	}
	p.store.Record(window)

	p.mu.Lock()
	listeners := append([]Listener(nil), p.listeners...)
	p.mu.Unlock()
	for _, l := range listeners {
		l(window)
	}
	return nil
}

func (p *Poller) run(ctx context.Context) {
	changes := p.watch(ctx)
	failures := 0

	timer := time.NewTimer(0)
	defer timer.Stop()
	for {
		if err := p.Refresh(); err != nil {
			failures++
			p.logger.Warn("log poll failed", "path", p.source.Path(), "failures", failures, "error", err)
		} else {
			failures = 0
		}

		timer.Reset(calculateBackoff(failures, p.interval))
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		case <-changes:
			timer.Stop()
			select {
			case <-ctx.Done():
				return
			case <-time.After(changeSettle):
			}
		}
	}
}

// watch reports writes to the log file. It returns nil when the file cannot
// be watched, leaving the ticker as the only trigger.
func (p *Poller) watch(ctx context.Context) <-chan struct{} {
	path := p.source.Path()
	if path == "" {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		p.logger.Warn("log watch unavailable", "error", err)
		return nil
	}
	// Watch the directory so rotation (remove + create) is seen too.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		p.logger.Warn("log watch unavailable", "path", path, "error", err)
		return nil
	}

	target := filepath.Clean(path)
	out := make(chan struct{}, 1)
	go func() {
		defer func() { _ = watcher.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				select {
				case out <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				p.logger.Warn("log watch error", "error", err)
			}
		}
	}()
	return out
}

// calculateBackoff doubles the base interval per consecutive failure, capped
// at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = base
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = maxBackoff
	b.MaxElapsedTime = 0
	b.Reset()

	next := base
	for i := 0; i <= failures; i++ {
		next = b.NextBackOff()
	}
	return min(next, maxBackoff)
}
