package timeclock

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Entry is one work interval for an instructor. An entry with a null
// ClockOutAt is "open"; at most one open entry may exist per instructor.
type Entry struct {
	ID           string    `json:"id"`
	InstructorID string    `json:"instructor_id"`
	ClockInAt    time.Time `json:"clock_in_at"`
	ClockOutAt   null.Time `json:"clock_out_at"`
}

func (e Entry) IsOpen() bool {
	return !e.ClockOutAt.Valid
}

// Status distinguishes the four clock outcomes. AlreadyClockedIn and
// NotClockedIn are informational, not errors: kiosks double-submit.
type Status string

const (
	StatusClockedIn        Status = "clocked_in"
	StatusClockedOut       Status = "clocked_out"
	StatusAlreadyClockedIn Status = "already_clocked_in"
	StatusNotClockedIn     Status = "not_clocked_in"
)

type Result struct {
	Status  Status `json:"status"`
	Message string `json:"message"`
}
