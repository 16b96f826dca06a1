package ui

import (
	"hash/crc32"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Theme is a dashboard palette. Backgrounds go from outermost (Background)
// through the header and command bar (Surface) to the log panel (Panel).
type Theme struct {
	Name string

	Background string
	Surface    string
	Panel      string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// OnAir and Done color the duration badges of open and finished sessions.
	OnAir string
	Done  string
}

// Styles holds the lipgloss styles derived from a Theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header lipgloss.Style
	Logo   lipgloss.Style

	onAir lipgloss.Style
	done  lipgloss.Style
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

func badge(color, text string) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(text)).
		Background(lipgloss.Color(color)).
		Bold(true).
		Padding(0, 1)
}

func (t Theme) Styles() Styles {
	return Styles{
		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),
		InfoText:    fg(t.Info),

		Header: fg(t.Text).Background(lipgloss.Color(t.Surface)).Padding(0, 1),
		Logo:   fg(t.Warning).Bold(true),

		onAir: badge(t.OnAir, t.Background),
		done:  badge(t.Done, t.Background),
	}
}

// SessionBadge styles a duration badge for an open or finished session.
func (s Styles) SessionBadge(active bool) lipgloss.Style {
	if active {
		return s.onAir
	}
	return s.done
}

// WithBackground puts every text style on bgColor. Badges keep their own.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	out := s
	for _, st := range []*lipgloss.Style{
		&out.Text, &out.MutedText, &out.FaintText, &out.AccentText,
		&out.SuccessText, &out.WarningText, &out.DangerText, &out.InfoText,
		&out.Header, &out.Logo,
	} {
		*st = st.Background(bg)
	}
	return out
}

// keyColor gives each talkgroup or callsign a stable color: the hue comes
// from a CRC32 of the value, saturation and lightness are fixed.
func keyColor(value string) lipgloss.Color {
	hue := float64(crc32.ChecksumIEEE([]byte(value)) % 360)
	return lipgloss.Color(colorful.Hsl(hue, 0.7, 0.4).Clamped().Hex())
}

var themeOrder = []string{"Dracula", "Slate", "Amber"}

var themes = map[string]Theme{
	"Dracula": {
		// https://draculatheme.com/spec
		Name:       "Dracula",
		Background: "#191A21",
		Surface:    "#282A36",
		Panel:      "#21222C",
		Text:       "#F8F8F2",
		Muted:      "#6272A4",
		Faint:      "#44475A",
		Accent:     "#BD93F9",
		Success:    "#50FA7B",
		Warning:    "#FFB86C",
		Danger:     "#FF5555",
		Info:       "#8BE9FD",
		OnAir:      "#50FA7B",
		Done:       "#BD93F9",
	},
	"Slate": {
		// Tailwind slate and sky
		Name:       "Slate",
		Background: "#020617",
		Surface:    "#0f172a",
		Panel:      "#1e293b",
		Text:       "#f1f5f9",
		Muted:      "#94a3b8",
		Faint:      "#64748b",
		Accent:     "#38bdf8",
		Success:    "#22c55e",
		Warning:    "#f59e0b",
		Danger:     "#ef4444",
		Info:       "#06b6d4",
		OnAir:      "#22c55e",
		Done:       "#0284c7",
	},
	"Amber": {
		// Monochrome phosphor, the look of an old rig display.
		Name:       "Amber",
		Background: "#0c0800",
		Surface:    "#1a1200",
		Panel:      "#120c00",
		Text:       "#ffb000",
		Muted:      "#b37b00",
		Faint:      "#664600",
		Accent:     "#ffcc4d",
		Success:    "#ffd966",
		Warning:    "#ff8c00",
		Danger:     "#ff4500",
		Info:       "#ffc233",
		OnAir:      "#ffd966",
		Done:       "#996a00",
	},
}

// GetTheme returns a theme by name, falling back to Dracula.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes["Dracula"]
}

// NextTheme returns the theme after current in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

func ThemeNames() []string {
	return themeOrder
}
