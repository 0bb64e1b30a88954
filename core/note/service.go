package note

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Add(ctx context.Context, nn NewNote) (Note, error) {
	n, err := svc.repo.CreateNote(ctx, Note{
		StudentID: nn.StudentID,
		Title:     null.NewString(nn.Title, nn.Title != ""),
		Note:      nn.Note,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return Note{}, errors.Wrap(err, "inserting note")
	}
	return n, nil
}

func (svc *Service) ForStudent(ctx context.Context, studentID string) ([]Note, error) {
	return svc.repo.QueryNotesByStudent(ctx, studentID)
}
