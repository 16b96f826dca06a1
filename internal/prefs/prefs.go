// Package prefs remembers dashboard choices (theme, order, filter) between
// runs in a small TOML file next to the config.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/svxdash/internal/config"
)

const defaultPath = "~/.config/svxdash/prefs.toml"

// Prefs holds choices the operator makes inside the TUI.
type Prefs struct {
	Theme       string `toml:"theme"`
	NewestFirst bool   `toml:"newest_first"`
	TalkersOnly bool   `toml:"talkers_only"`
}

// Default is a newest-first Dracula dashboard showing every line.
func Default() Prefs {
	return Prefs{Theme: "Dracula", NewestFirst: true}
}

// Load returns the saved preferences, or defaults for anything missing. A
// broken file is not worth failing startup over, so errors are swallowed.
func Load(path string) Prefs {
	p := Default()
	file, err := locate(path)
	if err != nil {
		return p
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return p
	}
	if toml.Unmarshal(data, &p) != nil {
		return Default()
	}
	if p.Theme == "" {
		p.Theme = Default().Theme
	}
	return p
}

// Save writes p to path, creating parent directories.
func Save(path string, p Prefs) error {
	file, err := locate(path)
	if err != nil {
		return fmt.Errorf("resolve prefs path: %w", err)
	}
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	if err := os.WriteFile(file, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func locate(path string) (string, error) {
	if path == "" {
		path = defaultPath
	}
	return config.ExpandPath(path)
}
