// Package talker turns the reflector log window into talker sessions.
//
// A window flows through four steps, all pure apart from the initial read:
//
//	Split      raw text -> RawRecord (one per line, oldest first)
//	Parser     RawRecord -> ParsedRecord (fixed 19-char timestamp, message at 21)
//	Track      ParsedRecord -> Session (start/stop pairing per talkgroup+callsign)
//	Assemble   ParsedRecord + Annotation -> Entry (ascending or descending)
//
// Pairing is a single forward pass with at most one pending session per Key.
// A second start for an open key replaces the first, which then never gets a
// duration. A stop with nothing pending is ignored. Sessions still open at the
// end of the window are active; their duration is measured against the time
// given to Window.Entries, so it keeps growing across refreshes until the
// stop marker shows up.
//
// Engine wires the steps to logtail.Tail using an explicit Config.
package talker
