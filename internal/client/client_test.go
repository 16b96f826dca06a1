package client

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/five82/svxdash/internal/api"
	"github.com/five82/svxdash/internal/control"
	"github.com/five82/svxdash/internal/talker"
)

const sampleLog = `2025-03-01 12:00:10: ReflectorLogic: Talker start on TG #12: W1ABC
2025-03-01 12:01:40: ReflectorLogic: Talker stop on TG #12: W1ABC
2025-03-01 12:02:00: ReflectorLogic: Talker start on TG #91: DL1XYZ
`

type recordingRunner struct{ argv []string }

func (r *recordingRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	r.argv = append([]string{name}, args...)
	return nil, nil
}

type fixture struct {
	client *Client
	dtmf   string
	ptt    string
	runner *recordingRunner
}

func newFixture(t *testing.T, logContent string) fixture {
	t.Helper()
	dir := t.TempDir()
	logPath := filepath.Join(dir, "svxlink.log")
	if logContent != "" {
		if err := os.WriteFile(logPath, []byte(logContent), 0o644); err != nil {
			t.Fatalf("write log: %v", err)
		}
	}
	f := fixture{
		dtmf:   filepath.Join(dir, "dtmf"),
		ptt:    filepath.Join(dir, "ptt"),
		runner: &recordingRunner{},
	}
	for _, p := range []string{f.dtmf, f.ptt} {
		if err := os.WriteFile(p, nil, 0o600); err != nil {
			t.Fatalf("create control file: %v", err)
		}
	}

	now := time.Date(2025, 3, 1, 12, 2, 45, 0, time.UTC)
	srv := api.NewServer(api.Options{
		Source:   talker.New(talker.Config{Path: logPath, Location: time.UTC, Now: func() time.Time { return now }}),
		Commands: control.Writer{DTMFPath: f.dtmf, PTTPath: f.ptt},
		System:   control.Actions{Service: "svxlink", Runner: f.runner},
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	c, err := NewClient(ts.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	f.client = c
	return f
}

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Host != defaultAPIBind {
		t.Fatalf("default url = %q", u.String())
	}

	u, err = parseBaseURL("http://example.com:1234/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestClient_FetchLog(t *testing.T) {
	f := newFixture(t, sampleLog)

	entries, err := f.client.FetchLog(context.Background(), LogQuery{Lines: 2, Order: talker.Descending})
	if err != nil {
		t.Fatalf("FetchLog returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Timestamp != "2025-03-01 12:02:00" || !entries[0].Active {
		t.Fatalf("first entry = %+v, want active newest", entries[0])
	}
	if entries[0].Duration == nil || *entries[0].Duration != "45s" {
		t.Fatalf("duration = %v, want 45s", entries[0].Duration)
	}
}

func TestClient_FetchTalkers(t *testing.T) {
	f := newFixture(t, sampleLog)

	talkers, err := f.client.FetchTalkers(context.Background())
	if err != nil {
		t.Fatalf("FetchTalkers returned error: %v", err)
	}
	if len(talkers.Active) != 1 || talkers.Active[0].Callsign != "DL1XYZ" {
		t.Fatalf("active = %+v", talkers.Active)
	}
	if len(talkers.Recent) != 1 || talkers.Recent[0].Duration != "1m 30s" {
		t.Fatalf("recent = %+v", talkers.Recent)
	}
}

func TestClient_Commands(t *testing.T) {
	f := newFixture(t, sampleLog)
	ctx := context.Background()

	if err := f.client.SendDTMF(ctx, "*91#"); err != nil {
		t.Fatalf("SendDTMF returned error: %v", err)
	}
	if err := f.client.SetPTT(ctx, "1"); err != nil {
		t.Fatalf("SetPTT returned error: %v", err)
	}
	if err := f.client.SystemAction(ctx, "restart"); err != nil {
		t.Fatalf("SystemAction returned error: %v", err)
	}

	if data, _ := os.ReadFile(f.dtmf); string(data) != "*91#" {
		t.Fatalf("dtmf control = %q", data)
	}
	if data, _ := os.ReadFile(f.ptt); string(data) != "1" {
		t.Fatalf("ptt control = %q", data)
	}
	if got := strings.Join(f.runner.argv, " "); got != "sudo systemctl restart svxlink" {
		t.Fatalf("runner argv = %q", got)
	}
}

func TestClient_ErrorsCarryServerMessage(t *testing.T) {
	f := newFixture(t, "")

	_, err := f.client.FetchLog(context.Background(), LogQuery{})
	if err == nil || !strings.Contains(err.Error(), "status 500: Error reading log file") {
		t.Fatalf("FetchLog error = %v, want server message", err)
	}

	err = f.client.SystemAction(context.Background(), "format")
	if err == nil || !strings.Contains(err.Error(), "Unsupported system action") {
		t.Fatalf("SystemAction error = %v, want unsupported action", err)
	}
}

func TestClient_DecodeErrorAndPlainStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/talkers":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		default:
			http.Error(w, "nope", http.StatusBadGateway)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	if _, err := c.FetchTalkers(context.Background()); err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("FetchTalkers error = %v, want decode error", err)
	}
	if _, err := c.FetchLog(context.Background(), LogQuery{}); err == nil || !strings.HasSuffix(err.Error(), "returned status 502") {
		t.Fatalf("FetchLog error = %v, want status 502", err)
	}
}
