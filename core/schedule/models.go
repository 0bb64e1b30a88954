package schedule

import (
	"context"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/nzaba/tempo/core"
)

// Known lesson types. The set is open: unknown tags are stored as-is so new
// offerings do not need a code change.
const (
	LessonPrivate = "Private"
	LessonGroup   = "Group"
	LessonMommyMe = "Mommy & Me"
	LessonOther   = "Other"
)

// Session is one scheduled class. Sessions are independent: several may share
// a date and start time (two simultaneous groups are normal), so there is no
// uniqueness constraint on (Date, StartTime). Create/read only; edits and
// cancellation are handled outside this system.
type Session struct {
	ID              string    `json:"id"`
	Date            string    `json:"date"` // YYYY-MM-DD
	StartTime       string    `json:"start_time"` // HH:MM, 24h
	DurationMinutes int       `json:"duration_minutes"`
	LessonType      string    `json:"lesson_type"`
	ParentID        string    `json:"parent_id"`
	CreatedAt       time.Time `json:"-"`
}

// RosterLink joins a session to a student, optionally with an assigned
// instructor. Links are created in the same transaction as their session.
type RosterLink struct {
	ID           string      `json:"id"`
	SessionID    string      `json:"session_id"`
	StudentID    string      `json:"student_id"`
	InstructorID null.String `json:"instructor_id,omitempty"`
}

// RosterEntry is a roster link enriched for the day view. Optional references
// render as empty strings, never nulls the caller has to guard against.
type RosterEntry struct {
	StudentID      string `json:"id"`
	StudentName    string `json:"name"`
	InstructorID   string `json:"instructor_id"`
	InstructorName string `json:"instructor_name"`
}

// DaySession is a session enriched with parent contact details and its full
// roster, as shown on the day schedule.
type DaySession struct {
	Session
	ParentName       string        `json:"parent_name"`
	ParentPhone      string        `json:"parent_phone"`
	EmergencyContact string        `json:"emergency_contact"`
	Roster           []RosterEntry `json:"students"`
}

type Repository interface {
	CreateSession(ctx context.Context, sess Session, exec ...core.DBExecutor) (Session, error)
	CreateRosterLinks(ctx context.Context, links []RosterLink, exec ...core.DBExecutor) ([]RosterLink, error)
	// QueryDaySessions returns the enriched sessions for a date ordered by
	// start time ascending. A link whose student has vanished is filtered
	// out rather than failing the whole day.
	QueryDaySessions(ctx context.Context, date string, exec ...core.DBExecutor) ([]DaySession, error)
}
