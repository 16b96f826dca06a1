package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/svxdash/internal/talker"
)

// Config captures everything svxdash needs to watch a reflector.
type Config struct {
	LogFile           string
	LogLines          int
	DateFormats       []string
	Location          *time.Location
	APIBind           string
	DTMFControl       string
	PTTControl        string
	ServiceName       string
	NatsURL           string
	NatsSubjectPrefix string
	PollSeconds       int
	LogLevel          string
	AppLog            string
}

const (
	defaultConfigPath    = "~/.config/svxdash/config.toml"
	defaultLogFile       = "/var/log/svxlink"
	defaultAPIBind       = "127.0.0.1:8080"
	defaultDTMFControl   = "/dev/shm/svxlink_dtmf_ctrl"
	defaultPTTControl    = "/dev/shm/svxlink_ptt_ctrl"
	defaultServiceName   = "svxlink"
	defaultSubjectPrefix = "svxdash"
	defaultPollSeconds   = 2
	defaultLogLevel      = "info"
	defaultAppLog        = "~/.local/state/svxdash/svxdash.log"
)

// DefaultPath returns the config path used when none is given.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		LogFile:           defaultLogFile,
		LogLines:          talker.DefaultLines,
		DateFormats:       append([]string(nil), talker.DefaultLayouts...),
		Location:          time.Local,
		APIBind:           defaultAPIBind,
		DTMFControl:       defaultDTMFControl,
		PTTControl:        defaultPTTControl,
		ServiceName:       defaultServiceName,
		NatsSubjectPrefix: defaultSubjectPrefix,
		PollSeconds:       defaultPollSeconds,
		LogLevel:          defaultLogLevel,
		AppLog:            mustExpand(defaultAppLog),
	}
}

type rawConfig struct {
	LogFile           string   `toml:"log_file"`
	LogLines          int      `toml:"log_lines"`
	DateFormats       []string `toml:"date_formats"`
	Timezone          string   `toml:"timezone"`
	APIBind           string   `toml:"api_bind"`
	DTMFControl       string   `toml:"dtmf_control"`
	PTTControl        string   `toml:"ptt_control"`
	ServiceName       string   `toml:"service_name"`
	NatsURL           string   `toml:"nats_url"`
	NatsSubjectPrefix string   `toml:"nats_subject_prefix"`
	PollSeconds       int      `toml:"poll_seconds"`
	LogLevel          string   `toml:"log_level"`
	AppLog            string   `toml:"app_log"`
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if raw.LogLines > 0 {
		cfg.LogLines = raw.LogLines
	}
	if formats := trimAll(raw.DateFormats); len(formats) > 0 {
		cfg.DateFormats = formats
	}
	if tz := strings.TrimSpace(raw.Timezone); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: timezone %q: %w", tz, err)
		}
		cfg.Location = loc
	}
	cfg.APIBind = orDefault(raw.APIBind, defaultAPIBind)
	cfg.DTMFControl = orDefault(raw.DTMFControl, defaultDTMFControl)
	cfg.PTTControl = orDefault(raw.PTTControl, defaultPTTControl)
	cfg.ServiceName = orDefault(raw.ServiceName, defaultServiceName)
	cfg.NatsURL = strings.TrimSpace(raw.NatsURL)
	cfg.NatsSubjectPrefix = orDefault(raw.NatsSubjectPrefix, defaultSubjectPrefix)
	if raw.PollSeconds > 0 {
		cfg.PollSeconds = raw.PollSeconds
	}
	cfg.LogLevel = strings.ToLower(orDefault(raw.LogLevel, defaultLogLevel))
	if v := strings.TrimSpace(raw.AppLog); v != "" {
		cfg.AppLog = mustExpand(v)
	}

	return cfg, nil
}

// Engine returns the talker engine settings derived from the config.
func (c Config) Engine() talker.Config {
	return talker.Config{
		Path:     c.LogFile,
		Lines:    c.LogLines,
		Layouts:  c.DateFormats,
		Location: c.Location,
	}
}

// PollInterval returns the refresh cadence.
func (c Config) PollInterval() time.Duration {
	if c.PollSeconds <= 0 {
		return defaultPollSeconds * time.Second
	}
	return time.Duration(c.PollSeconds) * time.Second
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

func trimAll(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ to the home directory and makes path absolute.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
