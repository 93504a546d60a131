package timetable

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// semesterStartRe matches the leading "<day> <Mon> [<year>]" of a duration
// string such as "26 Jan - 10 May 2026"; the trailing end-date segment is
// ignored.
var semesterStartRe = regexp.MustCompile(`^(\d{1,2})\s([A-Za-z]{3})(?:\s(\d{4}))?`)

// ResolveSemesterStart parses the semester's first date out of a duration
// string. When the year is absent it is inferred from now: a semester
// starting Jan-Jun seen from Aug-Dec belongs to the next calendar year.
//
// The result is anchored at local noon so that later day arithmetic can
// never shift across a date boundary.
func ResolveSemesterStart(duration string, now time.Time, loc *time.Location) (time.Time, error) {
	if strings.TrimSpace(duration) == "" {
		return time.Time{}, errors.New("duration string is empty - no timetable data available")
	}

	m := semesterStartRe.FindStringSubmatch(duration)
	if m == nil {
		return time.Time{}, fmt.Errorf("unable to parse semester start date from %q", duration)
	}

	day, _ := strconv.Atoi(m[1])
	month, err := monthFromAbbrev(m[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("duration %q: %w", duration, err)
	}

	var year int
	if m[3] != "" {
		year, _ = strconv.Atoi(m[3])
	} else {
		year = now.Year()
		if month <= time.June && now.Month() >= time.August {
			year++
		}
	}

	return time.Date(year, month, day, 12, 0, 0, 0, loc), nil
}
