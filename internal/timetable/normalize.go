package timetable

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// calendarStampLayout is the ICS local date-time form (no zone suffix).
const calendarStampLayout = "20060102T150405"

// FormatStamp renders t's wall-clock fields as an ICS timestamp. The zone
// is deliberately ignored here: emitting a UTC-shifted representation moves
// events across date boundaries, so the serializer pairs this value with an
// explicit TZID parameter instead.
func FormatStamp(t time.Time) string {
	return t.Format(calendarStampLayout)
}

// To24Hour converts a 12-hour clock string like "3:05 PM" into "HH:MM:SS".
// 12 AM maps to hour 0 and 12 PM stays 12.
func To24Hour(s string) (string, error) {
	hour, minute, err := parseClock12(s)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d:%02d:00", hour, minute), nil
}

// parseClock12 splits "h:mm AM/PM" into 24-hour clock fields.
func parseClock12(s string) (hour, minute int, err error) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("malformed time %q: want \"h:mm AM/PM\"", s)
	}

	clock, modifier := fields[0], strings.ToUpper(fields[1])
	if modifier != "AM" && modifier != "PM" {
		return 0, 0, fmt.Errorf("malformed time %q: unknown modifier %q", s, fields[1])
	}

	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed time %q: want \"h:mm AM/PM\"", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed time %q: non-numeric hour", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed time %q: non-numeric minute", s)
	}
	if hour < 1 || hour > 12 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("malformed time %q: out of range", s)
	}

	if modifier == "PM" && hour != 12 {
		hour += 12
	}
	if modifier == "AM" && hour == 12 {
		hour = 0
	}
	return hour, minute, nil
}

var monthsByAbbrev = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// monthFromAbbrev resolves a 3-letter month abbreviation, case-insensitively.
func monthFromAbbrev(s string) (time.Month, error) {
	m, ok := monthsByAbbrev[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("unknown month %q", s)
	}
	return m, nil
}
