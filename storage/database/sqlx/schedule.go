package sqlxrepos

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/nzaba/tempo/core"
	"github.com/nzaba/tempo/core/schedule"
)

type scheduleRepository struct {
	exec core.DBExecutor
}

var _ schedule.Repository = (*scheduleRepository)(nil) // interface compliance check

func NewScheduleRepository(exec core.DBExecutor) schedule.Repository {
	return &scheduleRepository{exec: exec}
}

type (
	dbDaySession struct {
		ID               string    `db:"id"`
		Date             string    `db:"session_date"`
		StartTime        string    `db:"start_time"`
		DurationMinutes  int       `db:"duration_minutes"`
		LessonType       string    `db:"lesson_type"`
		ParentID         string    `db:"parent_id"`
		CreatedAt        time.Time `db:"created_at"`
		ParentName       string    `db:"parent_name"`
		ParentPhone      string    `db:"parent_phone"`
		EmergencyContact string    `db:"emergency_contact"`
	}

	dbRosterRow struct {
		SessionID      string      `db:"class_session_id"`
		StudentID      string      `db:"student_id"`
		StudentName    null.String `db:"student_name"`
		InstructorID   null.String `db:"instructor_id"`
		InstructorName null.String `db:"instructor_name"`
	}
)

func (repo scheduleRepository) CreateSession(
	ctx context.Context, sess schedule.Session, exec ...core.DBExecutor,
) (schedule.Session, error) {
	sess.ID = newID()

	query, args, err := psql.Insert("class_sessions").
		Columns("id", "session_date", "start_time", "duration_minutes", "lesson_type", "parent_id", "created_at").
		Values(sess.ID, sess.Date, sess.StartTime, sess.DurationMinutes, sess.LessonType, sess.ParentID, sess.CreatedAt).
		ToSql()
	if err != nil {
		return schedule.Session{}, errors.Wrap(err, "building session insert")
	}
	if _, err = getExec(repo.exec, exec).ExecContext(ctx, query, args...); err != nil {
		return schedule.Session{}, errors.Wrap(err, "inserting session")
	}
	return sess, nil
}

func (repo scheduleRepository) CreateRosterLinks(
	ctx context.Context, links []schedule.RosterLink, exec ...core.DBExecutor,
) ([]schedule.RosterLink, error) {
	if len(links) == 0 {
		return links, nil
	}

	qb := psql.Insert("class_students").
		Columns("id", "class_session_id", "student_id", "instructor_id")
	for i := range links {
		links[i].ID = newID()
		qb = qb.Values(links[i].ID, links[i].SessionID, links[i].StudentID, links[i].InstructorID)
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building roster insert")
	}
	if _, err = getExec(repo.exec, exec).ExecContext(ctx, query, args...); err != nil {
		return nil, errors.Wrap(err, "inserting roster links")
	}
	return links, nil
}

func (repo scheduleRepository) QueryDaySessions(
	ctx context.Context, date string, exec ...core.DBExecutor,
) ([]schedule.DaySession, error) {
	query, args, err := psql.Select(
		"cs.id", "cs.session_date", "cs.start_time", "cs.duration_minutes",
		"cs.lesson_type", "cs.parent_id", "cs.created_at",
		"COALESCE(p.name, '') AS parent_name",
		"COALESCE(p.phone, '') AS parent_phone",
		"COALESCE(p.emergency_contact, '') AS emergency_contact",
	).
		From("class_sessions cs").
		LeftJoin("parents p ON p.id = cs.parent_id").
		Where(sq.Eq{"cs.session_date": date}).
		OrderBy("cs.start_time ASC", "cs.created_at ASC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building day query")
	}

	var sessRows []dbDaySession
	if err = sqlx.SelectContext(ctx, getExec(repo.exec, exec), &sessRows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying day sessions")
	}

	sessions := make([]schedule.DaySession, 0, len(sessRows))
	byID := make(map[string]int, len(sessRows))
	ids := make([]string, 0, len(sessRows))
	for i, row := range sessRows {
		sessions = append(sessions, schedule.DaySession{
			Session: schedule.Session{
				ID:              row.ID,
				Date:            row.Date,
				StartTime:       row.StartTime,
				DurationMinutes: row.DurationMinutes,
				LessonType:      row.LessonType,
				ParentID:        row.ParentID,
				CreatedAt:       row.CreatedAt,
			},
			ParentName:       row.ParentName,
			ParentPhone:      row.ParentPhone,
			EmergencyContact: row.EmergencyContact,
			Roster:           []schedule.RosterEntry{},
		})
		byID[row.ID] = i
		ids = append(ids, row.ID)
	}
	if len(sessions) == 0 {
		return sessions, nil
	}

	query, args, err = psql.Select(
		"cl.class_session_id", "cl.student_id", "cl.instructor_id",
		"s.name AS student_name",
		"i.name AS instructor_name",
	).
		From("class_students cl").
		LeftJoin("students s ON s.id = cl.student_id").
		LeftJoin("instructors i ON i.id = cl.instructor_id").
		Where(sq.Eq{"cl.class_session_id": ids}).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building roster query")
	}

	var rosterRows []dbRosterRow
	if err = sqlx.SelectContext(ctx, getExec(repo.exec, exec), &rosterRows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying rosters")
	}

	for _, row := range rosterRows {
		// a link whose student row is gone is filtered, not fatal
		if !row.StudentName.Valid {
			continue
		}
		idx, ok := byID[row.SessionID]
		if !ok {
			continue
		}
		sessions[idx].Roster = append(sessions[idx].Roster, schedule.RosterEntry{
			StudentID:      row.StudentID,
			StudentName:    row.StudentName.String,
			InstructorID:   row.InstructorID.String,
			InstructorName: row.InstructorName.String,
		})
	}
	return sessions, nil
}
