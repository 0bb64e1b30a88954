package sqlxrepos

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/nzaba/tempo/core"
	"github.com/nzaba/tempo/core/note"
)

type noteRepository struct {
	exec core.DBExecutor
}

var _ note.Repository = (*noteRepository)(nil) // interface compliance check

func NewNoteRepository(exec core.DBExecutor) note.Repository {
	return &noteRepository{exec: exec}
}

type dbNote struct {
	ID        string      `db:"id"`
	StudentID string      `db:"student_id"`
	Title     null.String `db:"title"`
	Note      string      `db:"note"`
	CreatedAt time.Time   `db:"created_at"`
}

func (repo noteRepository) unrow(n dbNote) note.Note {
	return note.Note{
		ID:        n.ID,
		StudentID: n.StudentID,
		Title:     n.Title,
		Note:      n.Note,
		CreatedAt: n.CreatedAt,
	}
}

func (repo noteRepository) CreateNote(
	ctx context.Context, n note.Note, exec ...core.DBExecutor,
) (note.Note, error) {
	n.ID = newID()

	query, args, err := psql.Insert("student_notes").
		Columns("id", "student_id", "title", "note", "created_at").
		Values(n.ID, n.StudentID, n.Title, n.Note, n.CreatedAt).
		ToSql()
	if err != nil {
		return note.Note{}, errors.Wrap(err, "building note insert")
	}
	if _, err = getExec(repo.exec, exec).ExecContext(ctx, query, args...); err != nil {
		return note.Note{}, errors.Wrap(err, "inserting note")
	}
	return n, nil
}

func (repo noteRepository) QueryNotesByStudent(
	ctx context.Context, studentID string, exec ...core.DBExecutor,
) ([]note.Note, error) {
	query, args, err := psql.Select("id", "student_id", "title", "note", "created_at").
		From("student_notes").
		Where(sq.Eq{"student_id": studentID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building notes query")
	}

	var rows []dbNote
	if err = sqlx.SelectContext(ctx, getExec(repo.exec, exec), &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying notes")
	}

	notes := make([]note.Note, 0, len(rows))
	for _, row := range rows {
		notes = append(notes, repo.unrow(row))
	}
	return notes, nil
}
