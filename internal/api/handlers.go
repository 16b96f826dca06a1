package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/five82/svxdash/internal/control"
	"github.com/five82/svxdash/internal/talker"
)

const maxBodyBytes = 4 << 10

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) log(w http.ResponseWriter, r *http.Request) {
	lines := s.linesParam(r)
	order := talker.ParseOrder(r.URL.Query().Get("order"), talker.Descending)

	window, err := s.opts.Source.Window(lines)
	if err != nil {
		s.logger.Error("read log failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Error reading log file")
		return
	}
	writeSuccess(w, map[string]any{
		"logEntries": window.Entries(s.opts.Source.Now(), order),
	})
}

// Session is the JSON view of a talker session.
type Session struct {
	TG       string     `json:"tg"`
	Callsign string     `json:"callsign"`
	Started  time.Time  `json:"started"`
	Stopped  *time.Time `json:"stopped,omitempty"`
	Seconds  int        `json:"seconds"`
	Duration string     `json:"duration"`
	Active   bool       `json:"active"`
}

func sessionView(sess talker.Session, now time.Time) Session {
	seconds := sess.Seconds(now)
	v := Session{
		TG:       sess.Key.Channel,
		Callsign: sess.Key.Identity,
		Started:  sess.StartTime,
		Seconds:  seconds,
		Duration: talker.FormatDuration(seconds),
		Active:   sess.Active,
	}
	if !sess.Active {
		stopped := sess.StopTime
		v.Stopped = &stopped
	}
	return v
}

func (s *Server) talkers(w http.ResponseWriter, r *http.Request) {
	window, err := s.opts.Source.Window(s.linesParam(r))
	if err != nil {
		s.logger.Error("read log failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Error reading log file")
		return
	}

	now := s.opts.Source.Now()
	active := make([]Session, 0)
	for _, sess := range window.Active() {
		active = append(active, sessionView(sess, now))
	}
	// Most recently finished first.
	completed := window.Completed()
	recent := make([]Session, 0, len(completed))
	for i := len(completed) - 1; i >= 0; i-- {
		recent = append(recent, sessionView(completed[i], now))
	}

	writeSuccess(w, map[string]any{
		"active": active,
		"recent": recent,
	})
}

func (s *Server) websocket(w http.ResponseWriter, r *http.Request) {
	if s.opts.Hub == nil {
		writeError(w, http.StatusServiceUnavailable, "Live updates disabled")
		return
	}
	s.opts.Hub.ServeHTTP(w, r)
}

func (s *Server) dtmf(w http.ResponseWriter, r *http.Request) {
	s.command(w, r, "dtmf", "DTMF", func(value string) error {
		return s.opts.Commands.WriteDTMF(value)
	})
}

func (s *Server) ptt(w http.ResponseWriter, r *http.Request) {
	s.command(w, r, "ptt", "PTT", func(value string) error {
		return s.opts.Commands.WritePTT(value)
	})
}

func (s *Server) command(w http.ResponseWriter, r *http.Request, field, label string, write func(string) error) {
	if s.opts.Commands == nil {
		writeError(w, http.StatusServiceUnavailable, "Control disabled")
		return
	}

	var payload map[string]json.RawMessage
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	raw, ok := payload[field]
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Missing %q in request body", field))
		return
	}
	value, err := scalarString(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid %q in request body", field))
		return
	}

	if err := write(value); err != nil {
		s.logger.Warn("control write failed", "field", field, "error", err)
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Failed to write %s: %v", label, err))
		return
	}
	writeSuccess(w, map[string]any{"message": label + " command written successfully"})
}

// scalarString accepts a JSON string or number so {"ptt":1} works like {"ptt":"1"}.
func scalarString(raw json.RawMessage) (string, error) {
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str, nil
	}
	var num json.Number
	if err := json.Unmarshal(raw, &num); err != nil {
		return "", err
	}
	return num.String(), nil
}

func (s *Server) system(w http.ResponseWriter, r *http.Request) {
	if s.opts.System == nil {
		writeError(w, http.StatusServiceUnavailable, "Control disabled")
		return
	}

	action := chi.URLParam(r, "action")
	if err := s.opts.System.Run(r.Context(), action); err != nil {
		if errors.Is(err, control.ErrUnknownAction) {
			writeError(w, http.StatusBadRequest, "Unsupported system action")
			return
		}
		s.logger.Error("system action failed", "action", action, "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Info("system action executed", "action", action)
	writeSuccess(w, map[string]any{"message": fmt.Sprintf("System action '%s' executed", action)})
}

// linesParam falls back to the configured window for missing, non-numeric
// or non-positive values.
func (s *Server) linesParam(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("lines"))
	if err != nil || n <= 0 {
		return s.opts.Lines
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeSuccess(w http.ResponseWriter, data map[string]any) {
	data["success"] = true
	writeJSON(w, http.StatusOK, data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"success": false, "error": message})
}
