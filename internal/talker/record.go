package talker

import (
	"bytes"
	"time"
)

const (
	// TimestampWidth is the fixed width of the leading timestamp field.
	TimestampWidth = 19
	separatorWidth = 2
	messageOffset  = TimestampWidth + separatorWidth

	// DisplayLayout is the layout used for timestamps in assembled entries.
	DisplayLayout = "2006-01-02 15:04:05"
)

// DefaultLayouts lists the timestamp layouts accepted when none are configured,
// most specific first.
var DefaultLayouts = []string{
	"2006-01-02 15:04:05",
	"02.01.2006 15:04:05",
	"2006/01/02 15:04:05",
}

// RawRecord is one line of the window. Index is its 0-based position, oldest first.
type RawRecord struct {
	Index int
	Text  []byte
}

// ParsedRecord is a RawRecord whose timestamp was understood.
type ParsedRecord struct {
	Index     int
	Timestamp time.Time
	Message   string
}

// Split breaks a window into records. Empty lines keep their index.
func Split(text []byte) []RawRecord {
	if len(text) == 0 {
		return nil
	}
	parts := bytes.Split(text, []byte{'\n'})
	records := make([]RawRecord, len(parts))
	for i, part := range parts {
		records[i] = RawRecord{Index: i, Text: bytes.TrimSuffix(part, []byte{'\r'})}
	}
	return records
}

// Parser extracts the timestamp and message fields from raw records.
type Parser struct {
	// Layouts are tried in order; the first that parses wins.
	Layouts  []string
	Location *time.Location
}

// Parse returns the parsed record, or false when the line is too short or its
// timestamp matches none of the layouts.
func (p Parser) Parse(rec RawRecord) (ParsedRecord, bool) {
	if len(rec.Text) < messageOffset {
		return ParsedRecord{}, false
	}
	ts, ok := p.parseTimestamp(string(rec.Text[:TimestampWidth]))
	if !ok {
		return ParsedRecord{}, false
	}
	return ParsedRecord{
		Index:     rec.Index,
		Timestamp: ts,
		Message:   string(rec.Text[messageOffset:]),
	}, true
}

// ParseAll parses every record, silently dropping the ones Parse rejects.
func (p Parser) ParseAll(records []RawRecord) []ParsedRecord {
	parsed := make([]ParsedRecord, 0, len(records))
	for _, rec := range records {
		if pr, ok := p.Parse(rec); ok {
			parsed = append(parsed, pr)
		}
	}
	return parsed
}

func (p Parser) parseTimestamp(value string) (time.Time, bool) {
	layouts := p.Layouts
	if len(layouts) == 0 {
		layouts = DefaultLayouts
	}
	loc := p.Location
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
