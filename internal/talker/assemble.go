package talker

import (
	"fmt"
	"strings"
)

// Order selects how assembled entries are arranged. It never affects how
// durations are computed.
type Order int

const (
	// Ascending is oldest first, the order the log was written in.
	Ascending Order = iota
	// Descending is newest first, the order the dashboard shows.
	Descending
)

// ParseOrder maps "asc"/"desc" (and their long forms) to an Order.
// Anything else yields the fallback.
func ParseOrder(value string, fallback Order) Order {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "asc", "ascending", "oldest":
		return Ascending
	case "desc", "descending", "newest":
		return Descending
	default:
		return fallback
	}
}

func (o Order) String() string {
	if o == Descending {
		return "desc"
	}
	return "asc"
}

// Entry is one annotated log line as handed to the presentation layer.
type Entry struct {
	Timestamp string  `json:"timestamp"`
	Message   string  `json:"message"`
	Duration  *string `json:"duration"`
	Active    bool    `json:"active"`
}

// Assemble attaches annotations to their records and arranges them in order.
// Records without an annotation carry a nil duration.
func Assemble(records []ParsedRecord, annotations []Annotation, order Order) []Entry {
	byIndex := make(map[int]Annotation, len(annotations))
	for _, a := range annotations {
		byIndex[a.Index] = a
	}

	entries := make([]Entry, 0, len(records))
	for _, rec := range records {
		entry := Entry{
			Timestamp: rec.Timestamp.Format(DisplayLayout),
			Message:   rec.Message,
		}
		if a, ok := byIndex[rec.Index]; ok {
			d := FormatDuration(a.Seconds)
			entry.Duration = &d
			entry.Active = a.Active
		}
		entries = append(entries, entry)
	}

	if order == Descending {
		for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
			entries[i], entries[j] = entries[j], entries[i]
		}
	}
	return entries
}

// FormatDuration renders seconds as "1m 05s", or "42s" under a minute.
func FormatDuration(seconds int) string {
	if seconds >= 60 {
		return fmt.Sprintf("%dm %02ds", seconds/60, seconds%60)
	}
	return fmt.Sprintf("%ds", seconds)
}
