package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BgStyle paints rendered segments onto one background color. lipgloss emits
// a reset after every styled segment, so spaces between words are painted
// explicitly or they show the terminal background.
type BgStyle struct {
	base lipgloss.Style
}

// NewBgStyle returns a painter for the given background color.
func NewBgStyle(color string) BgStyle {
	return BgStyle{base: lipgloss.NewStyle().Background(lipgloss.Color(color))}
}

// Render applies style to each word of text and rejoins them with painted spaces.
func (b BgStyle) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	styled := style.Background(b.base.GetBackground())
	words := strings.Split(text, " ")
	for i, w := range words {
		if w != "" {
			words[i] = styled.Render(w)
		}
	}
	return strings.Join(words, b.Space())
}

func (b BgStyle) Space() string {
	return b.Spaces(1)
}

func (b BgStyle) Spaces(n int) string {
	return b.base.Render(strings.Repeat(" ", n))
}

// Sep paints a literal separator such as ":".
func (b BgStyle) Sep(sep string) string {
	return b.base.Render(sep)
}

func (b BgStyle) Join(parts []string, sep string) string {
	return strings.Join(parts, b.Sep(sep))
}

// FillLine pads content to width so the background reaches the right edge.
func (b BgStyle) FillLine(content string, width int) string {
	return b.base.Width(width).Render(content)
}

// Key renders a talkgroup or callsign in its stable hashed color.
func (b BgStyle) Key(value string) string {
	return b.base.Foreground(keyColor(value)).Bold(true).Render(value)
}
