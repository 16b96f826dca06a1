// Package ui implements the svxdash terminal dashboard with Bubble Tea.
//
// The screen is four stacked parts:
//
//   - header: liveness, on-air count, window size, log path, last update
//   - on-air panel: open sessions with durations that tick every second
//   - log panel: the window as annotated entries, in a scrollable viewport
//   - command bar: key hints, theme name and transient status messages
//
// The model never reads the log itself. A one-second tick copies the latest
// state.Snapshot and re-assembles its window at the current time, so active
// durations advance between polls without re-reading the file. The r key asks
// the poller for an immediate refresh.
//
// Theme (T) and order (o) choices are persisted through the prefs package.
// Talkgroups and callsigns get stable colors derived from a CRC32 hue.
package ui
