package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/five82/svxdash/internal/announce"
	"github.com/five82/svxdash/internal/api"
	"github.com/five82/svxdash/internal/config"
	"github.com/five82/svxdash/internal/control"
	"github.com/five82/svxdash/internal/logging"
	"github.com/five82/svxdash/internal/prefs"
	"github.com/five82/svxdash/internal/state"
	"github.com/five82/svxdash/internal/talker"
	"github.com/five82/svxdash/internal/ui"
)

const shutdownTimeout = 5 * time.Second

// Options configure a svxdash run. Zero values defer to the config file.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/svxdash/prefs.toml
	PollEvery  int    // seconds
	Lines      int
	Bind       string // serve only
}

func (o Options) load() (config.Config, error) {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if o.PollEvery > 0 {
		cfg.PollSeconds = o.PollEvery
	}
	if o.Lines > 0 {
		cfg.LogLines = o.Lines
	}
	if o.Bind != "" {
		cfg.APIBind = o.Bind
	}
	return cfg, nil
}

// Run boots the TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := opts.load()
	if err != nil {
		return err
	}

	// The TUI owns the terminal; logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if f, err := logging.OpenFile(cfg.AppLog); err == nil {
		defer func() { _ = f.Close() }()
		logOut = f
	}
	logger := logging.Setup(cfg.LogLevel, logOut, false)

	userPrefs := prefs.Load(opts.PrefsPath)
	engine := talker.New(cfg.Engine())
	store := &state.Store{}
	poller := NewPoller(engine, store, cfg.PollInterval(), logger)

	closeAnnouncer := attachAnnouncer(cfg, poller, logger)
	defer closeAnnouncer()

	// Populate the store before the first frame.
	_ = poller.Refresh()
	poller.Start(ctx)

	return ui.Run(ui.Options{
		Context:   ctx,
		Store:     store,
		Refresh:   poller.Refresh,
		LogPath:   engine.Path(),
		PollTick:  cfg.PollInterval(),
		Prefs:     userPrefs,
		PrefsPath: opts.PrefsPath,
		Logger:    logger,
	})
}

// Serve runs the HTTP API with live websocket updates until the context is
// cancelled.
func Serve(ctx context.Context, opts Options) error {
	cfg, err := opts.load()
	if err != nil {
		return err
	}
	logger := logging.Setup(cfg.LogLevel, os.Stdout, true)

	engine := talker.New(cfg.Engine())
	store := &state.Store{}
	poller := NewPoller(engine, store, cfg.PollInterval(), logger)

	hub := api.NewHub(logger)
	poller.OnRefresh(hub.Broadcast)

	closeAnnouncer := attachAnnouncer(cfg, poller, logger)
	defer closeAnnouncer()

	srv := api.NewServer(api.Options{
		Addr:     cfg.APIBind,
		Source:   engine,
		Lines:    cfg.LogLines,
		Commands: control.Writer{DTMFPath: cfg.DTMFControl, PTTPath: cfg.PTTControl},
		System:   control.Actions{Service: cfg.ServiceName, Runner: control.ExecRunner{}},
		Hub:      hub,
		Logger:   logger,
	})

	poller.Start(ctx)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("api server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("shutdown api server: %w", err)
	}
	return nil
}

// Entries reads one window and assembles it, for one-shot output.
func Entries(opts Options, order talker.Order) ([]talker.Entry, error) {
	cfg, err := opts.load()
	if err != nil {
		return nil, err
	}
	return talker.New(cfg.Engine()).Entries(0, order)
}

// attachAnnouncer wires NATS announcements when a URL is configured. The
// returned func closes the connection.
func attachAnnouncer(cfg config.Config, poller *Poller, logger *slog.Logger) func() {
	if cfg.NatsURL == "" {
		return func() {}
	}
	conn, err := announce.ConnectNATS(cfg.NatsURL, logger)
	if err != nil {
		logger.Warn("announcements disabled", "url", cfg.NatsURL, "error", err)
		return func() {}
	}
	logger.Info("announcing talkers", "url", cfg.NatsURL, "prefix", cfg.NatsSubjectPrefix)
	poller.OnRefresh(announce.NewAnnouncer(conn, cfg.NatsSubjectPrefix, logger).Handle)
	return conn.Close
}
