package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeSlots(t *testing.T) {
	slots := TimeSlots()

	// 9 open hours at 12 slots per hour.
	require.Len(t, slots, 108)
	assert.Equal(t, "10:00", slots[0])
	assert.Equal(t, "18:55", slots[len(slots)-1])
}

func TestIsBookableSlot(t *testing.T) {
	assert.True(t, IsBookableSlot("10:00"))
	assert.True(t, IsBookableSlot("13:05"))
	assert.True(t, IsBookableSlot("18:55"))

	assert.False(t, IsBookableSlot("09:55"), "before opening")
	assert.False(t, IsBookableSlot("19:00"), "at close")
	assert.False(t, IsBookableSlot("12:03"), "off the 5-minute grid")
	assert.False(t, IsBookableSlot("noon"))
	assert.False(t, IsBookableSlot(""))
}

func TestFormatSlot(t *testing.T) {
	cases := map[string]string{
		"10:00": "10:00 AM",
		"11:55": "11:55 AM",
		"12:00": "12:00 PM",
		"13:05": "1:05 PM",
		"18:55": "6:55 PM",
		"00:30": "12:30 AM",
	}
	for in, want := range cases {
		got, err := FormatSlot(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestFormatSlot_Invalid(t *testing.T) {
	_, err := FormatSlot("25:00")
	assert.Error(t, err)
	_, err = FormatSlot("noon")
	assert.Error(t, err)
}

func TestParseDateTime(t *testing.T) {
	cases := []struct {
		label string
		hour  int
		min   int
	}{
		{"10:00 AM", 10, 0},
		{"1:05 PM", 13, 5},
		{"12:00 PM", 12, 0}, // noon stays 12
		{"12:30 AM", 0, 30}, // midnight edge
		{"6:55 pm", 18, 55}, // case-insensitive
		{"14:30", 14, 30},   // bare 24-hour also accepted
	}

	for _, tc := range cases {
		got, err := ParseDateTime("2025-03-10", tc.label)
		require.NoError(t, err, tc.label)
		want := time.Date(2025, 3, 10, tc.hour, tc.min, 0, 0, time.Local)
		assert.True(t, got.Equal(want), "%s: got %v want %v", tc.label, got, want)
	}
}

func TestParseDateTime_Malformed(t *testing.T) {
	_, err := ParseDateTime("not-a-date", "10:00 AM")
	assert.Error(t, err)

	_, err = ParseDateTime("2025-03-10", "sometime")
	assert.Error(t, err)

	_, err = ParseDateTime("2025-03-10", "25:00")
	assert.Error(t, err)
}
