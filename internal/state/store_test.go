package state

import (
	"errors"
	"testing"
	"time"

	"github.com/five82/svxdash/internal/talker"
)

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func sampleWindow() talker.Window {
	return talker.Window{
		Records: []talker.ParsedRecord{
			{Index: 0, Timestamp: t0, Message: "ReflectorLogic: Talker start on TG #12: W1ABC"},
			{Index: 1, Timestamp: t0.Add(time.Minute), Message: "ReflectorLogic: Talker stop on TG #12: W1ABC"},
		},
		Sessions: []talker.Session{
			{Key: talker.Key{Channel: "12", Identity: "W1ABC"}, StartIndex: 0, StartTime: t0, StopIndex: 1, StopTime: t0.Add(time.Minute)},
		},
		ReadAt: t0.Add(time.Minute),
	}
}

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func TestStore_ZeroValueHasNoWindow(t *testing.T) {
	var s Store
	snap := s.Snapshot()
	if snap.HasWindow || snap.Window.Len() != 0 || snap.Stale() {
		t.Fatalf("zero snapshot = %#v", snap)
	}
}

func TestStore_RecordUsesWindowReadTime(t *testing.T) {
	s := Store{now: fixedClock(t0.Add(2 * time.Minute))}
	s.Record(sampleWindow())

	snap := s.Snapshot()
	if !snap.HasWindow || snap.Window.Len() != 2 || len(snap.Window.Sessions) != 1 {
		t.Fatalf("snapshot window = %#v", snap.Window)
	}
	if !snap.ReadAt.Equal(t0.Add(time.Minute)) {
		t.Fatalf("ReadAt = %v, want window ReadAt", snap.ReadAt)
	}
	if !snap.CheckedAt.Equal(t0.Add(2 * time.Minute)) {
		t.Fatalf("CheckedAt = %v, want clock time", snap.CheckedAt)
	}
}

func TestStore_RecordWithoutReadTimeFallsBackToClock(t *testing.T) {
	s := Store{now: fixedClock(t0)}
	s.Record(talker.Window{})

	if snap := s.Snapshot(); !snap.HasWindow || !snap.ReadAt.Equal(t0) {
		t.Fatalf("snapshot = %#v, want HasWindow and ReadAt=%v", snap, t0)
	}
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	var s Store
	s.Record(sampleWindow())

	snap := s.Snapshot()
	snap.Window.Records[0].Message = "mutated"
	snap.Window.Sessions[0].Active = true

	again := s.Snapshot()
	if again.Window.Records[0].Message == "mutated" {
		t.Fatal("records shared with caller")
	}
	if again.Window.Sessions[0].Active {
		t.Fatal("sessions shared with caller")
	}
}

func TestStore_FailKeepsLastWindow(t *testing.T) {
	s := Store{now: fixedClock(t0.Add(5 * time.Minute))}
	s.Record(sampleWindow())

	boom := errors.New("open log: no such file or directory")
	s.Fail(boom)

	snap := s.Snapshot()
	if !snap.HasWindow || snap.Window.Len() != 2 {
		t.Fatalf("window dropped on failure: %#v", snap.Window)
	}
	if !errors.Is(snap.Err, boom) {
		t.Fatalf("Err = %v, want %v", snap.Err, boom)
	}
	if !snap.ReadAt.Equal(t0.Add(time.Minute)) {
		t.Fatalf("ReadAt moved on failure: %v", snap.ReadAt)
	}
}

func TestStore_StaleAfterRepeatedFailures(t *testing.T) {
	var s Store

	s.Fail(errors.New("fail 1"))
	if snap := s.Snapshot(); snap.Failures != 1 || snap.Stale() {
		t.Fatalf("after one failure: %#v", snap)
	}

	s.Fail(errors.New("fail 2"))
	if snap := s.Snapshot(); !snap.Stale() {
		t.Fatalf("after two failures Stale() = false")
	}

	s.Record(sampleWindow())
	snap := s.Snapshot()
	if snap.Failures != 0 || snap.Stale() || snap.Err != nil {
		t.Fatalf("success did not clear failures: %#v", snap)
	}
}
