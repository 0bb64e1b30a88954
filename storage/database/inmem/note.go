package inmemdb

import (
	"context"
	"sort"

	"github.com/nzaba/tempo/core"
	"github.com/nzaba/tempo/core/note"
)

type noteRepository struct {
	db *DB
}

var _ note.Repository = (*noteRepository)(nil)

func NewNoteRepository(db *DB) note.Repository {
	return &noteRepository{db: db}
}

func (repo *noteRepository) CreateNote(
	ctx context.Context, n note.Note, exec ...core.DBExecutor,
) (note.Note, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	n.ID = newID()
	repo.db.notes[n.ID] = &n
	return n, nil
}

func (repo *noteRepository) QueryNotesByStudent(
	ctx context.Context, studentID string, exec ...core.DBExecutor,
) ([]note.Note, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	notes := make([]note.Note, 0)
	for _, n := range repo.db.notes {
		if n.StudentID == studentID {
			notes = append(notes, *n)
		}
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].CreatedAt.After(notes[j].CreatedAt) })
	return notes, nil
}
