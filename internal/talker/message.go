package talker

import "strings"

// Kind tags the shape of a log message.
type Kind int

const (
	KindOther Kind = iota
	KindStart
	KindStop
)

func (k Kind) String() string {
	switch k {
	case KindStart:
		return "start"
	case KindStop:
		return "stop"
	default:
		return "other"
	}
}

// Key identifies a talker on a talkgroup.
type Key struct {
	Channel  string `json:"tg"`
	Identity string `json:"callsign"`
}

func (k Key) String() string {
	return k.Channel + "|" + k.Identity
}

// Event is the classified form of a message.
type Event struct {
	Kind Kind
	Key  Key
}

const (
	startMarker = "Talker start on TG #"
	stopMarker  = "Talker stop on TG #"
)

// Classify recognises talker start and stop messages. Anything else,
// including a marker with an empty talkgroup or callsign, is KindOther.
func Classify(message string) Event {
	if key, ok := matchMarker(message, startMarker); ok {
		return Event{Kind: KindStart, Key: key}
	}
	if key, ok := matchMarker(message, stopMarker); ok {
		return Event{Kind: KindStop, Key: key}
	}
	return Event{Kind: KindOther}
}

// matchMarker expects "<marker><digits>: <identity>" with identity running to
// the end of the message.
func matchMarker(message, marker string) (Key, bool) {
	_, rest, found := strings.Cut(message, marker)
	if !found {
		return Key{}, false
	}
	digits := 0
	for digits < len(rest) && rest[digits] >= '0' && rest[digits] <= '9' {
		digits++
	}
	if digits == 0 {
		return Key{}, false
	}
	identity, ok := strings.CutPrefix(rest[digits:], ": ")
	if !ok || identity == "" {
		return Key{}, false
	}
	return Key{Channel: rest[:digits], Identity: identity}, true
}
