// Package logtail reads the trailing window of a growing log file.
//
// # Overview
//
// The reflector writes one event per line to a file that only ever grows.
// The dashboard needs the last few dozen lines of it on every refresh, so
// Tail walks the file backward from its end instead of scanning it from the
// start:
//
//	window, err := logtail.Tail("/var/log/svxlink", 30)
//	if err != nil {
//		return fmt.Errorf("tail reflector log: %w", err)
//	}
//
// # Backward Read
//
//  1. Stat the file; its size at this moment is the snapshot. Lines appended
//     afterwards belong to the next refresh.
//  2. Look at the final byte. When the file does not end with a newline the
//     trailing partial line already counts as one of the requested lines.
//  3. Step backward in chunks, counting newlines, until the counter goes
//     negative (one newline past the first wanted line) or the start of the
//     file is reached.
//  4. Drop whole leading lines until exactly the requested count remains,
//     then trim surrounding whitespace.
//
// # Chunk Size
//
// The step size follows the request so a one-line peek does not pull in a
// page of data:
//
//   - fewer than 2 lines: 64 bytes
//   - fewer than 10 lines: 512 bytes
//   - otherwise: 4096 bytes
//
// Memory use is bounded by the accumulated window plus at most one chunk,
// independent of the total file size.
//
// # Error Handling
//
// Open, stat and read failures are returned wrapped, so callers can check
// errors.Is(err, fs.ErrNotExist) or fs.ErrPermission. A zero or negative
// line count and an empty file both return an empty window and nil error.
//
// # Design Rationale
//
// There is no file watching here; the poller decides when to read again.
// There is no rotation handling either: the current file is the window.
package logtail
