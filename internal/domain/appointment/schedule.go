package appointment

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/perfectlysalon/admin-api/internal/httperr"
)

// The salon takes bookings on a fixed 5-minute grid from 10:00 to 19:00.
const (
	OpenHour    = 10
	CloseHour   = 19
	SlotMinutes = 5
)

// TimeSlots returns every bookable slot in 24-hour "15:04" form,
// 10:00 through 18:55.
func TimeSlots() []string {
	var slots []string
	for hour := OpenHour; hour < CloseHour; hour++ {
		for minute := 0; minute < 60; minute += SlotMinutes {
			slots = append(slots, fmt.Sprintf("%02d:%02d", hour, minute))
		}
	}
	return slots
}

// IsBookableSlot reports whether a 24-hour "15:04" string lands on the grid.
func IsBookableSlot(hhmm string) bool {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return false
	}
	hour, err1 := strconv.Atoi(parts[0])
	minute, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return false
	}
	return hour >= OpenHour && hour < CloseHour &&
		minute >= 0 && minute < 60 && minute%SlotMinutes == 0
}

// FormatSlot converts a 24-hour slot ("13:05") into the 12-hour label
// stored on appointments ("1:05 PM").
func FormatSlot(hhmm string) (string, error) {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return "", httperr.ErrBusinessMsg(httperr.CodeValidation, "invalid time slot")
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", httperr.ErrBusinessMsg(httperr.CodeValidation, "invalid time slot")
	}

	meridiem := "AM"
	if hour >= 12 {
		meridiem = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%s %s", display, parts[1], meridiem), nil
}

var timeLabelRe = regexp.MustCompile(`^\s*(\d{1,2}):(\d{2})\s*(AM|PM)?\s*$`)

// ParseDateTime reconstructs the absolute scheduled moment from the
// stored calendar date and 12-hour time label. The 12 o'clock edges are
// handled explicitly: "12 AM" is hour 0, "12 PM" stays hour 12, and any
// other PM hour gains 12.
func ParseDateTime(date, timeLabel string) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", date, err)
	}

	m := timeLabelRe.FindStringSubmatch(strings.ToUpper(timeLabel))
	if m == nil {
		return time.Time{}, fmt.Errorf("parse time %q: unrecognized format", timeLabel)
	}

	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return time.Time{}, fmt.Errorf("parse time %q: out of range", timeLabel)
	}

	switch m[3] {
	case "PM":
		if hour != 12 {
			hour += 12
		}
	case "AM":
		if hour == 12 {
			hour = 0
		}
	}
	if hour > 23 {
		return time.Time{}, fmt.Errorf("parse time %q: out of range", timeLabel)
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.Local), nil
}
