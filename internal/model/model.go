package model

import "time"

// Kind distinguishes the two occurrence kinds the generator emits.
type Kind string

const (
	KindClass Kind = "class"
	KindExam  Kind = "exam"
)

// Event is one concrete calendar occurrence: a single dated instance of a
// recurring class session, or a one-time exam sitting. Start and End carry
// the institution's local timezone; the serializer emits their wall-clock
// fields under a fixed TZID.
type Event struct {
	// UID is deterministically derived from kind, subject code and the
	// occurrence start timestamp, so re-generation from identical input
	// yields identical documents.
	UID string

	Kind Kind

	Summary     string
	Location    string
	Description string

	Start time.Time
	End   time.Time
}
