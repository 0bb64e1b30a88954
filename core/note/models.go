package note

import (
	"context"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/nzaba/tempo/core"
)

// Note is a free-text progress entry for a student. Append-only.
type Note struct {
	ID        string      `json:"id"`
	StudentID string      `json:"student_id"`
	Title     null.String `json:"title,omitempty"`
	Note      string      `json:"note"`
	CreatedAt time.Time   `json:"created_at"`
}

type NewNote struct {
	StudentID string `json:"student_id" validate:"required"`
	Title     string `json:"title" validate:"max=120"`
	Note      string `json:"note" validate:"required"`
}

func (nn *NewNote) Validate() error {
	nn.Title = core.CleanString(nn.Title)
	nn.Note = core.CleanString(nn.Note)
	return core.Validate.Struct(nn)
}

type Repository interface {
	CreateNote(ctx context.Context, n Note, exec ...core.DBExecutor) (Note, error)
	// QueryNotesByStudent returns the student's notes, newest first.
	QueryNotesByStudent(ctx context.Context, studentID string, exec ...core.DBExecutor) ([]Note, error)
}
