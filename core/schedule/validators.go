package schedule

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/nzaba/tempo/core"
)

var (
	dateTag  = "date_ymd"
	dateText = "must be a valid date in YYYY-MM-DD format"

	timeTag  = "time_hhmm"
	timeText = "must be a valid time in HH:MM format"

	uniqueStudentsTag  = "unique_students"
	uniqueStudentsText = "a student may appear only once per session"
)

// InitValidators registers the schedule validation tags; core.InitValidators
// must have run first.
func InitValidators() {
	_ = core.Validate.RegisterValidation(dateTag, dateValidation)
	core.RegisterCustomTranslation(dateTag, dateText)

	_ = core.Validate.RegisterValidation(timeTag, timeValidation)
	core.RegisterCustomTranslation(timeTag, timeText)

	core.Validate.RegisterStructValidation(newSessionStructValidation, NewSession{})
	core.RegisterCustomTranslation(uniqueStudentsTag, uniqueStudentsText)
}

func dateValidation(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}

func timeValidation(fl validator.FieldLevel) bool {
	_, err := time.Parse("15:04", fl.Field().String())
	return err == nil
}

// newSessionStructValidation rejects duplicate students in one roster.
// The store does not constrain this; the check lives here.
func newSessionStructValidation(sl validator.StructLevel) {
	if ns, ok := sl.Current().Interface().(NewSession); ok {
		seen := make(map[string]bool, len(ns.Students))
		for _, st := range ns.Students {
			if seen[st.StudentID] {
				sl.ReportError(ns.Students, "students", "Students", uniqueStudentsTag, "")
				return
			}
			seen[st.StudentID] = true
		}
	}
}
