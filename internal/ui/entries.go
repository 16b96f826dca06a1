package ui

import (
	"fmt"
	"strings"

	"github.com/five82/svxdash/internal/talker"
)

// durationWidth fits "59m 59s"; longer sessions widen their own badge.
const durationWidth = 7

// renderEntries renders the log panel, one entry per line.
func (m Model) renderEntries(entries []talker.Entry, width int) string {
	bg := NewBgStyle(m.theme.Panel)
	styles := m.theme.Styles().WithBackground(m.theme.Panel)

	if len(entries) == 0 {
		msg := "No log lines in window"
		if m.talkerOnly {
			msg = "No talker activity in window"
		}
		return bg.FillLine(bg.Render(msg, styles.MutedText), width)
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, bg.FillLine(m.renderEntry(e, styles, bg), width))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderEntry(e talker.Entry, styles Styles, bg BgStyle) string {
	return bg.Render(e.Timestamp, styles.FaintText) + bg.Space() +
		m.renderBadge(e, styles, bg) + bg.Space() +
		renderMessage(e.Message, styles, bg)
}

// renderBadge shows the session duration on the line that carries it, or
// blank space of the same width so messages stay aligned.
func (m Model) renderBadge(e talker.Entry, styles Styles, bg BgStyle) string {
	if e.Duration == nil {
		return bg.Spaces(durationWidth + 2)
	}
	return styles.SessionBadge(e.Active).Render(fmt.Sprintf("%*s", durationWidth, *e.Duration))
}

// renderMessage colors the talkgroup and callsign of start/stop markers.
func renderMessage(msg string, styles Styles, bg BgStyle) string {
	ev := talker.Classify(msg)
	if ev.Kind == talker.KindOther {
		return bg.Render(msg, styles.Text)
	}
	anchor := "#" + ev.Key.Channel + ": "
	idx := strings.Index(msg, anchor)
	if idx < 0 {
		return bg.Render(msg, styles.Text)
	}

	headStyle := styles.MutedText
	if ev.Kind == talker.KindStart {
		headStyle = styles.InfoText
	}
	return bg.Render(msg[:idx+1], headStyle) +
		bg.Key(ev.Key.Channel) +
		bg.Render(":", styles.MutedText) + bg.Space() +
		bg.Key(ev.Key.Identity)
}
