package schedule

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/nzaba/tempo/core"
)

// NewSession contains everything needed to schedule a class.
type NewSession struct {
	Date            string              `json:"date" validate:"required,date_ymd"`
	StartTime       string              `json:"start_time" validate:"required,time_hhmm"`
	DurationMinutes int                 `json:"duration_minutes" validate:"required,gt=0,lte=480"`
	LessonType      string              `json:"lesson_type" validate:"required,max=40"`
	ParentID        string              `json:"parent_id" validate:"required"`
	Students        []NewSessionStudent `json:"students" validate:"required,min=1,dive"`
}

type NewSessionStudent struct {
	StudentID    string `json:"student_id" validate:"required"`
	InstructorID string `json:"instructor_id"` // optional assignment
}

func (ns *NewSession) Validate() error {
	ns.Date = core.CleanString(ns.Date)
	ns.StartTime = core.CleanString(ns.StartTime)
	ns.LessonType = core.CleanString(ns.LessonType)
	return core.Validate.Struct(ns)
}

type Service struct {
	db   core.DB
	repo Repository
}

func NewService(db core.DB, repo Repository) *Service {
	return &Service{db: db, repo: repo}
}

// Create persists the session and all of its roster links in one
// transaction: a reader may see the whole session or none of it, never a
// session with a partial roster.
func (svc *Service) Create(ctx context.Context, ns NewSession) (Session, error) {
	tx, err := svc.db.BeginTxx(ctx, nil)
	if err != nil {
		return Session{}, errors.Wrap(err, "beginning transaction")
	}
	defer func() { _ = tx.Rollback() }()

	sess, err := svc.repo.CreateSession(ctx, Session{
		Date:            ns.Date,
		StartTime:       ns.StartTime,
		DurationMinutes: ns.DurationMinutes,
		LessonType:      ns.LessonType,
		ParentID:        ns.ParentID,
		CreatedAt:       time.Now().UTC(),
	}, tx)
	if err != nil {
		return Session{}, errors.Wrap(err, "inserting session")
	}

	links := make([]RosterLink, 0, len(ns.Students))
	for _, st := range ns.Students {
		links = append(links, RosterLink{
			SessionID:    sess.ID,
			StudentID:    st.StudentID,
			InstructorID: null.NewString(st.InstructorID, st.InstructorID != ""),
		})
	}
	if _, err = svc.repo.CreateRosterLinks(ctx, links, tx); err != nil {
		return Session{}, errors.Wrap(err, "inserting roster links")
	}

	if err = tx.Commit(); err != nil {
		return Session{}, errors.Wrap(err, "committing session")
	}
	return sess, nil
}

// Day returns the enriched schedule for a date, ordered by start time.
func (svc *Service) Day(ctx context.Context, date string) ([]DaySession, error) {
	date = core.CleanString(date)
	if err := core.Validate.Var(date, "required,"+dateTag); err != nil {
		return nil, core.NewValidationError(nil, core.FieldError{Field: "date", Error: dateText})
	}
	return svc.repo.QueryDaySessions(ctx, date)
}

// Today is the day view for the server's current date.
func (svc *Service) Today(ctx context.Context) ([]DaySession, error) {
	return svc.repo.QueryDaySessions(ctx, time.Now().Format("2006-01-02"))
}
