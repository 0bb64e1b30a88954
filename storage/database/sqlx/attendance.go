package sqlxrepos

import (
	"context"

	"github.com/pkg/errors"

	"github.com/nzaba/tempo/core"
	"github.com/nzaba/tempo/core/attendance"
)

type attendanceRepository struct {
	exec core.DBExecutor
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(exec core.DBExecutor) attendance.Repository {
	return &attendanceRepository{exec: exec}
}

func (repo attendanceRepository) CreateEvent(
	ctx context.Context, evt attendance.Event, exec ...core.DBExecutor,
) (attendance.Event, error) {
	evt.ID = newID()

	query, args, err := psql.Insert("student_visits").
		Columns("id", "student_id", "created_at").
		Values(evt.ID, evt.StudentID, evt.CreatedAt).
		ToSql()
	if err != nil {
		return attendance.Event{}, errors.Wrap(err, "building visit insert")
	}
	if _, err = getExec(repo.exec, exec).ExecContext(ctx, query, args...); err != nil {
		return attendance.Event{}, errors.Wrap(err, "inserting visit")
	}
	return evt, nil
}
