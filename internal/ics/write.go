package ics

import (
	"errors"
	"os"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"tarumtcal/internal/model"
	"tarumtcal/internal/timetable"
)

// ErrNoEvents signals that no document should be produced at all. An empty
// event list means "no data yet", never "empty calendar", so callers must
// skip artifact creation instead of writing an empty-but-valid file.
var ErrNoEvents = errors.New("no events to serialize")

const prodID = "-//TARUMT//Timetable Generator//EN"

// Serialize assembles the calendar document. All timed fields are emitted
// as local wall-clock values qualified with the given TZID.
//
// Free-text fields are handed to the library raw: it applies the ICS text
// escaping (backslash, newline, semicolon, comma) itself at serialization,
// so escaping here would corrupt the output with doubled escapes. Carriage
// returns are stripped first; they are the one piece of the escaping
// contract the library leaves alone.
func Serialize(events []model.Event, tzid string, now time.Time) (string, error) {
	if len(events) == 0 {
		return "", ErrNoEvents
	}

	cal := ical.NewCalendar()
	cal.SetVersion("2.0")
	cal.SetProductId(prodID)
	cal.SetCalscale("GREGORIAN")
	cal.SetMethod(ical.MethodPublish)

	tz := &ical.KeyValues{Key: "TZID", Value: []string{tzid}}
	stamp := now.UTC().Format("20060102T150405Z")

	for _, e := range events {
		ev := cal.AddEvent(e.UID)
		ev.SetProperty(ical.ComponentPropertyDtstamp, stamp)
		ev.SetProperty(ical.ComponentPropertyDtStart, timetable.FormatStamp(e.Start), tz)
		ev.SetProperty(ical.ComponentPropertyDtEnd, timetable.FormatStamp(e.End), tz)
		ev.SetProperty(ical.ComponentPropertySummary, stripCR(e.Summary))
		ev.SetProperty(ical.ComponentPropertyLocation, stripCR(e.Location))
		ev.SetProperty(ical.ComponentPropertyDescription, stripCR(e.Description))
	}

	return cal.Serialize(), nil
}

// Write persists the document in a single write so no partial-file state is
// ever observable.
func Write(path, doc string) error {
	return os.WriteFile(path, []byte(doc), 0o644)
}

// stripCR drops carriage returns so CRLF-bearing upstream text cannot leak
// stray \r escapes into the document.
func stripCR(s string) string {
	return strings.ReplaceAll(s, "\r", "")
}
