package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/nzaba/tempo/core"
	"github.com/nzaba/tempo/core/timeclock"
)

type timeclockRepository struct {
	exec core.DBExecutor
}

var _ timeclock.Repository = (*timeclockRepository)(nil) // interface compliance check

func NewTimeclockRepository(exec core.DBExecutor) timeclock.Repository {
	return &timeclockRepository{exec: exec}
}

type dbEntry struct {
	ID           string    `db:"id"`
	InstructorID string    `db:"instructor_id"`
	ClockInAt    time.Time `db:"clock_in_at"`
	ClockOutAt   null.Time `db:"clock_out_at"`
}

func (repo timeclockRepository) unrow(e dbEntry) timeclock.Entry {
	return timeclock.Entry{
		ID:           e.ID,
		InstructorID: e.InstructorID,
		ClockInAt:    e.ClockInAt,
		ClockOutAt:   e.ClockOutAt,
	}
}

// GetOpenEntry selects the most recent open entry with FOR UPDATE, so inside
// a transaction two concurrent transitions serialize on the row while one is
// open. With nothing open there is no row to lock; the unique partial index
// on open entries arbitrates that race at insert time instead (see
// CreateEntry). Ordering by clock_in_at breaks ties should the data ever
// drift.
func (repo timeclockRepository) GetOpenEntry(
	ctx context.Context, instructorID string, exec ...core.DBExecutor,
) (timeclock.Entry, error) {
	query, args, err := psql.Select("id", "instructor_id", "clock_in_at", "clock_out_at").
		From("staff_time_entries").
		Where(sq.Eq{"instructor_id": instructorID}).
		Where("clock_out_at IS NULL").
		OrderBy("clock_in_at DESC").
		Limit(1).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return timeclock.Entry{}, errors.Wrap(err, "building open entry query")
	}

	var row dbEntry
	if err = sqlx.GetContext(ctx, getExec(repo.exec, exec), &row, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return timeclock.Entry{}, timeclock.ErrNoOpenEntry
		}
		return timeclock.Entry{}, errors.Wrap(err, "getting open entry")
	}
	return repo.unrow(row), nil
}

func (repo timeclockRepository) CreateEntry(
	ctx context.Context, entry timeclock.Entry, exec ...core.DBExecutor,
) (timeclock.Entry, error) {
	entry.ID = newID()

	query, args, err := psql.Insert("staff_time_entries").
		Columns("id", "instructor_id", "clock_in_at", "clock_out_at").
		Values(entry.ID, entry.InstructorID, entry.ClockInAt, entry.ClockOutAt).
		ToSql()
	if err != nil {
		return timeclock.Entry{}, errors.Wrap(err, "building time entry insert")
	}
	if _, err = getExec(repo.exec, exec).ExecContext(ctx, query, args...); err != nil {
		// the unique partial index admits one open entry per instructor
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" && pqErr.Constraint == "staff_time_entries_open_idx" {
			return timeclock.Entry{}, timeclock.ErrEntryAlreadyOpen
		}
		return timeclock.Entry{}, errors.Wrap(err, "inserting time entry")
	}
	return entry, nil
}

func (repo timeclockRepository) CloseEntry(
	ctx context.Context, id string, at time.Time, exec ...core.DBExecutor,
) error {
	query, args, err := psql.Update("staff_time_entries").
		Set("clock_out_at", at).
		Where(sq.Eq{"id": id}).
		Where("clock_out_at IS NULL").
		ToSql()
	if err != nil {
		return errors.Wrap(err, "building time entry update")
	}

	res, err := getExec(repo.exec, exec).ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "closing time entry")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "closing time entry")
	}
	if n == 0 {
		return timeclock.ErrNoOpenEntry
	}
	return nil
}
