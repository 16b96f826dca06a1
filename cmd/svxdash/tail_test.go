package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/svxdash/internal/talker"
)

func TestPrintEntries_Plain(t *testing.T) {
	dur := "1m 30s"
	live := "12s"
	entries := []talker.Entry{
		{Timestamp: "2025-03-01 12:00:10", Message: "ReflectorLogic: Talker start on TG #12: W1ABC"},
		{Timestamp: "2025-03-01 12:01:40", Message: "ReflectorLogic: Talker stop on TG #12: W1ABC", Duration: &dur},
		{Timestamp: "2025-03-01 12:02:00", Message: "ReflectorLogic: Talker start on TG #91: DL1XYZ", Duration: &live, Active: true},
	}

	var buf bytes.Buffer
	if err := printEntries(&buf, entries, false); err != nil {
		t.Fatalf("printEntries: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if strings.Contains(lines[0], "[") {
		t.Fatalf("unannotated line has a duration: %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "[1m 30s]") {
		t.Fatalf("completed line = %q", lines[1])
	}
	if !strings.HasSuffix(lines[2], "[12s (on air)]") {
		t.Fatalf("active line = %q", lines[2])
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("plain output contains escape codes")
	}
}

func TestTailCommand_JSON(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "svxlink.log")
	content := "2025-03-01 12:00:10: ReflectorLogic: Talker start on TG #12: W1ABC\n" +
		"2025-03-01 12:01:40: ReflectorLogic: Talker stop on TG #12: W1ABC\n"
	if err := os.WriteFile(logPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	cfgPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(cfgPath, []byte("log_file = \""+logPath+"\"\ntimezone = \"UTC\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"tail", "--config", cfgPath, "--json", "--order", "desc"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	got := out.String()
	first := strings.Index(got, "12:01:40")
	second := strings.Index(got, "12:00:10")
	if first < 0 || second < 0 || first > second {
		t.Fatalf("entries not newest first:\n%s", got)
	}
	if !strings.Contains(got, `"duration": "1m 30s"`) {
		t.Fatalf("missing duration:\n%s", got)
	}
}
