package timetable

import (
	"fmt"
	"strings"
	"time"

	appLog "tarumtcal/internal/log"
	"tarumtcal/internal/mobile"
	"tarumtcal/internal/model"
)

// examVenueFallback is used when an exam summary carries no venue segment.
const examVenueFallback = "TARUMT"

// Builder turns raw timetable records into calendar events. One builder
// handles both occurrence kinds so date math and field composition exist in
// exactly one place.
type Builder struct {
	loc       *time.Location
	uidDomain string

	// strict aborts a whole timetable on the first malformed record
	// instead of skipping it with a warning.
	strict bool

	// now feeds semester-year inference; replaceable in tests.
	now func() time.Time
}

func NewBuilder(loc *time.Location, uidDomain string, strict bool) *Builder {
	return &Builder{
		loc:       loc,
		uidDomain: uidDomain,
		strict:    strict,
		now:       time.Now,
	}
}

// ClassEvents expands every (session, week) pair of a class timetable into
// one event each. A nil timetable, blank duration or empty record list is
// the valid "not yet scheduled" state and yields no events and no error.
// An unparseable semester duration is a hard failure.
func (b *Builder) ClassEvents(tt *mobile.ClassTimetable) ([]model.Event, error) {
	if tt == nil || strings.TrimSpace(tt.Duration) == "" || len(tt.Rec) == 0 {
		return nil, nil
	}

	semStart, err := ResolveSemesterStart(tt.Duration, b.now(), b.loc)
	if err != nil {
		return nil, err
	}

	var events []model.Event
	for _, day := range tt.Rec {
		dow := day.DayOfWeek.Int()
		for _, session := range day.Sessions {
			evs, err := b.classSessionEvents(semStart, dow, session, tt.Weeks)
			if err != nil {
				if b.strict {
					return nil, fmt.Errorf("session %s: %w", session.SubjectCode, err)
				}
				appLog.Error("skipping malformed class session", err,
					"subject", session.SubjectCode, "dow", dow)
				continue
			}
			events = append(events, evs...)
		}
	}
	return events, nil
}

func (b *Builder) classSessionEvents(semStart time.Time, dow int, s mobile.ClassSession, weekLabels []string) ([]model.Event, error) {
	if dow < 1 || dow > 7 {
		return nil, fmt.Errorf("day of week %d out of range", dow)
	}

	weekSpec := s.WeekSpec
	if weekSpec == "" {
		weekSpec = weekAllMarker
	}
	weeks, err := ExpandWeeks(weekSpec, weekLabels)
	if err != nil {
		return nil, err
	}

	startHour, startMin, err := parseClock12(s.StartTime)
	if err != nil {
		return nil, fmt.Errorf("start time: %w", err)
	}
	endHour, endMin, err := parseClock12(s.EndTime)
	if err != nil {
		return nil, fmt.Errorf("end time: %w", err)
	}
	if endHour*60+endMin <= startHour*60+startMin {
		return nil, fmt.Errorf("session ends (%s) before it starts (%s)", s.EndTime, s.StartTime)
	}

	summary := fmt.Sprintf("(%s) %s", s.ClassType, s.Description)
	description := fmt.Sprintf("Lecturer: %s\nSubject Code: %s", s.Lecturer, s.SubjectCode)

	events := make([]model.Event, 0, len(weeks))
	for _, w := range weeks {
		// Occurrence date: semester start + whole weeks + weekday offset.
		// Only the date portion matters; the noon anchor of semStart keeps
		// the arithmetic on the intended calendar day.
		date := semStart.AddDate(0, 0, (w-1)*7+(dow-1))
		start := time.Date(date.Year(), date.Month(), date.Day(), startHour, startMin, 0, 0, b.loc)
		end := time.Date(date.Year(), date.Month(), date.Day(), endHour, endMin, 0, 0, b.loc)

		events = append(events, model.Event{
			UID:         b.uid(model.KindClass, s.SubjectCode, start),
			Kind:        model.KindClass,
			Summary:     summary,
			Location:    strings.TrimSpace(s.Room),
			Description: description,
			Start:       start,
			End:         end,
		})
	}
	return events, nil
}

// ExamEvents converts each exam record into one event. A nil timetable or
// empty record list means exams are simply not scheduled yet.
func (b *Builder) ExamEvents(tt *mobile.ExamTimetable) ([]model.Event, error) {
	if tt == nil || len(tt.Rec) == 0 {
		return nil, nil
	}

	events := make([]model.Event, 0, len(tt.Rec))
	for _, rec := range tt.Rec {
		ev, err := b.examEvent(rec)
		if err != nil {
			if b.strict {
				return nil, fmt.Errorf("exam %s: %w", rec.SubjectCode, err)
			}
			appLog.Error("skipping malformed exam record", err, "subject", rec.SubjectCode)
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

func (b *Builder) examEvent(rec mobile.ExamRecord) (model.Event, error) {
	month, err := monthFromAbbrev(rec.Month)
	if err != nil {
		return model.Event{}, err
	}
	hour, minute, err := parseClock12(rec.StartTime)
	if err != nil {
		return model.Event{}, fmt.Errorf("start time: %w", err)
	}
	if rec.Duration.Int() <= 0 {
		return model.Event{}, fmt.Errorf("non-positive duration %d", rec.Duration.Int())
	}

	start := time.Date(rec.Year.Int(), month, rec.Day.Int(), hour, minute, 0, 0, b.loc)
	// Full date-time arithmetic so a late sitting rolls over to the next
	// calendar day instead of producing an hour past 23.
	end := start.Add(time.Duration(rec.Duration.Int()) * time.Hour)

	venue := examVenueFallback
	if parts := strings.Split(rec.Summary, ","); len(parts) > 1 {
		if v := strings.TrimSpace(parts[1]); v != "" {
			venue = v
		}
	}

	return model.Event{
		UID:      b.uid(model.KindExam, rec.SubjectCode, start),
		Kind:     model.KindExam,
		Summary:  "📝 EXAM: " + rec.Description,
		Location: venue,
		Description: fmt.Sprintf("Subject Code: %s\nType: %s\nSeat Range: 1–%d",
			rec.SubjectCode, rec.PaperType, rec.SeatCount.Int()),
		Start: start,
		End:   end,
	}, nil
}

// uid derives the stable event identifier. Two occurrences collide only if
// they share kind, subject and exact start instant.
func (b *Builder) uid(kind model.Kind, subject string, start time.Time) string {
	return fmt.Sprintf("%s-%s-%s@%s", kind, subject, FormatStamp(start), b.uidDomain)
}
