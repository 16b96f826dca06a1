// Package api serves the talker log over HTTP and forwards control commands
// to the reflector host.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/five82/svxdash/internal/talker"
)

// LogSource reads a window of the reflector log.
type LogSource interface {
	Window(lines int) (talker.Window, error)
	Now() time.Time
}

// Commander writes DTMF and PTT commands.
type Commander interface {
	WriteDTMF(digits string) error
	WritePTT(value string) error
}

// SystemRunner executes a named system action.
type SystemRunner interface {
	Run(ctx context.Context, action string) error
}

// Options configures a Server. Commands, System and Hub are optional; the
// matching routes answer 503 when unset.
type Options struct {
	Addr     string
	Source   LogSource
	Lines    int
	Commands Commander
	System   SystemRunner
	Hub      *Hub
	Logger   *slog.Logger
}

type Server struct {
	router *chi.Mux
	opts   Options
	logger *slog.Logger
	http   *http.Server
}

func NewServer(opts Options) *Server {
	if opts.Lines <= 0 {
		opts.Lines = talker.DefaultLines
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router: router,
		opts:   opts,
		logger: logger,
	}

	router.Get("/health", s.health)
	router.Route("/api", func(r chi.Router) {
		r.Get("/log", s.log)
		r.Get("/talkers", s.talkers)
		r.Get("/ws", s.websocket)
		r.Post("/dtmf", s.dtmf)
		r.Post("/ptt", s.ptt)
		r.Post("/system/{action}", s.system)
	})
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not Found")
	})

	return s
}

// Handler returns the router wrapped with permissive CORS so a dashboard
// served from elsewhere can poll it.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(s.router)
}

// Start listens on the configured address and blocks until Shutdown.
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("API server starting", "addr", s.opts.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and closes websocket clients.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.opts.Hub != nil {
		s.opts.Hub.Close()
	}
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}
