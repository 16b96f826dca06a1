package ui

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/five82/svxdash/internal/talker"
)

// renderHeader renders the status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	if !m.snapshot.HasWindow {
		return m.renderWaitingHeader(styles, bg)
	}

	return styles.Header.Width(m.width).Render(m.buildStatusContent(styles, bg))
}

// renderWaitingHeader covers the time before the first successful read.
func (m Model) renderWaitingHeader(styles Styles, bg BgStyle) string {
	sep := bg.Spaces(2)
	parts := []string{bg.Render("svxdash", styles.Logo)}

	if m.snapshot.Err != nil {
		parts = append(parts,
			bg.Render("LOG "+classifyReadError(m.snapshot.Err), styles.DangerText.Bold(true)),
			bg.Render("Retrying...", styles.WarningText.Bold(true)),
		)
	} else {
		parts = append(parts, bg.Render("Reading log...", styles.WarningText.Bold(true)))
	}
	if m.logPath != "" {
		parts = append(parts, bg.Render(truncateMiddle(m.logPath, 50), styles.MutedText))
	}
	return styles.Header.Width(m.width).Render(bg.Join(parts, sep))
}

func (m Model) buildStatusContent(styles Styles, bg BgStyle) string {
	compact := m.width < 100
	sep := bg.Spaces(2)

	parts := []string{bg.Render("svxdash", styles.Logo)}

	if m.snapshot.Stale() {
		parts = append(parts, bg.Render("● STALE", styles.DangerText))
	} else {
		parts = append(parts, bg.Render("● LIVE", styles.SuccessText))
	}

	active := len(m.snapshot.Window.Active())
	activeStyle := styles.MutedText
	if active > 0 {
		activeStyle = styles.SuccessText
	}
	parts = append(parts,
		bg.Render("On air:", styles.MutedText)+bg.Space()+
			bg.Render(fmt.Sprintf("%d", active), activeStyle),
		bg.Render("Lines:", styles.MutedText)+bg.Space()+
			bg.Render(fmt.Sprintf("%d", m.snapshot.Window.Len()), styles.Text),
	)

	if !compact && m.logPath != "" {
		parts = append(parts, bg.Render(truncateMiddle(m.logPath, 40), styles.FaintText))
	}

	if ts := m.formatTimestamp(); ts != "" {
		parts = append(parts, bg.Render(ts, styles.MutedText))
	}

	if m.snapshot.Err != nil {
		maxErr := 80
		if compact {
			maxErr = 40
		}
		errText := truncate(m.snapshot.Err.Error(), maxErr)
		parts = append(parts,
			bg.Render(classifyReadError(m.snapshot.Err), styles.DangerText.Bold(true))+bg.Space()+
				bg.Render(errText, styles.DangerText),
		)
	}

	return bg.Join(parts, sep)
}

// formatTimestamp renders the last update as clock time plus a relative hint.
func (m Model) formatTimestamp() string {
	if m.lastUpdated.IsZero() {
		return ""
	}
	return m.lastUpdated.Format("15:04:05") + " (" + humanize.RelTime(m.lastUpdated, m.now, "ago", "from now") + ")"
}

// classifyReadError returns a short label for a log read failure.
func classifyReadError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "no such file"):
		return "MISSING"
	case strings.Contains(msg, "permission denied"):
		return "NO ACCESS"
	case strings.Contains(msg, "is a directory"):
		return "NOT A FILE"
	default:
		return "ERROR"
	}
}

// renderCommandBar renders the key hints.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	orderLabel := "Oldest first"
	if m.order == talker.Descending {
		orderLabel = "Newest first"
	}
	filterLabel := "All lines"
	if m.talkerOnly {
		filterLabel = "Talkers"
	}

	type cmd struct{ key, desc string }
	commands := []cmd{
		{"j/k", "Scroll"},
		{"g/G", "Top/Bottom"},
		{"o", orderLabel},
		{"a", filterLabel},
		{"r", "Refresh"},
		{"q", "Quit"},
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+2)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	if m.pollTick > 0 {
		segments = append(segments, bg.Render("every "+m.pollTick.String(), styles.FaintText))
	}
	if flash := m.activeFlash(); flash != "" {
		segments = append(segments, bg.Render(flash, styles.WarningText))
	}

	return styles.Header.Width(m.width).Render(strings.Join(segments, sep))
}

// renderOnAir lists open sessions with their live durations, oldest first.
func (m Model) renderOnAir() string {
	active := m.snapshot.Window.Active()
	if len(active) == 0 {
		return ""
	}
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := NewBgStyle(m.theme.Background)

	lines := []string{bg.FillLine(bg.Render("On air", styles.MutedText.Bold(true)), m.width)}
	shown := active
	if len(shown) > maxOnAir {
		shown = shown[len(shown)-maxOnAir:]
	}
	for _, s := range shown {
		line := styles.SessionBadge(true).Render(talker.FormatDuration(s.Seconds(m.now))) + bg.Space() +
			bg.Render("TG", styles.FaintText) + bg.Space() +
			bg.Key(s.Key.Channel) +
			bg.Spaces(2) +
			bg.Key(s.Key.Identity) +
			bg.Spaces(2) +
			bg.Render("since "+s.StartTime.Format("15:04:05"), styles.MutedText)
		lines = append(lines, bg.FillLine(line, m.width))
	}
	if hidden := len(active) - len(shown); hidden > 0 {
		lines[0] = bg.FillLine(bg.Render(fmt.Sprintf("On air (+%d more)", hidden), styles.MutedText.Bold(true)), m.width)
	}
	return strings.Join(lines, "\n")
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// truncateMiddle keeps both ends of a path, favouring the file name.
func truncateMiddle(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	if max <= 5 {
		return s[:max]
	}
	endLen := (max - 3) * 2 / 3
	startLen := max - 3 - endLen
	return s[:startLen] + "..." + s[len(s)-endLen:]
}
