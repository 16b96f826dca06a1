// Package state shares the latest talker window between the poller that
// reads the log and everything that displays it (the TUI, the HTTP API).
//
//	poller:  engine.Window() ─┬─ ok ──→ store.Record(window)
//	                          └─ err ─→ store.Fail(err)
//	readers: store.Snapshot().Window.Entries(now, order)
//
// The store keeps the parsed window rather than assembled entries. Active
// session durations depend on the current time, so readers assemble on
// demand and an on-air talker's duration keeps counting between polls.
//
// A failed read leaves the last good window in place. The dashboard keeps
// showing who was on air while the log is briefly unavailable (rotation,
// a remounted volume), and Stale turns true after two failures in a row.
package state
