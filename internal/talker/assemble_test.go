package talker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0s"},
		{5, "5s"},
		{59, "59s"},
		{60, "1m 00s"},
		{90, "1m 30s"},
		{605, "10m 05s"},
		{3725, "62m 05s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.seconds), "FormatDuration(%d)", tt.seconds)
	}
}

func TestParseOrder(t *testing.T) {
	assert.Equal(t, Ascending, ParseOrder("asc", Descending))
	assert.Equal(t, Descending, ParseOrder(" DESC ", Ascending))
	assert.Equal(t, Descending, ParseOrder("newest", Ascending))
	assert.Equal(t, Ascending, ParseOrder("", Ascending))
	assert.Equal(t, Descending, ParseOrder("bogus", Descending))
}

func TestAssemble_AttachesAnnotations(t *testing.T) {
	records := []ParsedRecord{
		rec(0, 0, start("12", "W1ABC")),
		rec(1, 30*time.Second, "ReflectorLogic: unrelated"),
		rec(2, 90*time.Second, stop("12", "W1ABC")),
		rec(3, 95*time.Second, start("7", "KC9XYZ")),
	}
	now := base.Add(100 * time.Second)
	entries := Assemble(records, Reconstruct(records, now), Ascending)
	require.Len(t, entries, 4)

	assert.Equal(t, "2025-03-01 12:00:00", entries[0].Timestamp)
	assert.Nil(t, entries[0].Duration)
	assert.False(t, entries[0].Active)

	assert.Nil(t, entries[1].Duration)

	require.NotNil(t, entries[2].Duration)
	assert.Equal(t, "1m 30s", *entries[2].Duration)
	assert.False(t, entries[2].Active)

	require.NotNil(t, entries[3].Duration)
	assert.Equal(t, "5s", *entries[3].Duration)
	assert.True(t, entries[3].Active)
}

func TestAssemble_OrderDoesNotChangeDurations(t *testing.T) {
	records := []ParsedRecord{
		rec(0, 0, start("12", "W1ABC")),
		rec(1, 90*time.Second, stop("12", "W1ABC")),
		rec(2, 100*time.Second, start("12", "W1ABC")),
	}
	now := base.Add(130 * time.Second)
	annotations := Reconstruct(records, now)

	asc := Assemble(records, annotations, Ascending)
	desc := Assemble(records, annotations, Descending)
	require.Len(t, desc, len(asc))
	for i := range asc {
		assert.Equal(t, asc[i], desc[len(desc)-1-i])
	}
	assert.Equal(t, "2025-03-01 12:01:40", desc[0].Timestamp)
	assert.True(t, desc[0].Active)
	assert.Equal(t, "30s", *desc[0].Duration)
}

func TestAssemble_Empty(t *testing.T) {
	entries := Assemble(nil, nil, Descending)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}
