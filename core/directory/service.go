package directory

import (
	"context"
	"errors"

	"github.com/nzaba/tempo/core"
)

var ErrNotFound = errors.New("directory record not found")

// Result caps for search-assisted roster building. The caps are independent
// so a common surname cannot crowd one list out with the other.
const (
	maxParentResults  = 15
	maxStudentResults = 25
)

type (
	// Repository is the read side of the directory. Records are created by
	// administrative enrollment (the admin CLI), never by this service.
	// All name filters are case-insensitive substring matches on display
	// name; results are ordered alphabetically.
	Repository interface {
		QueryActiveStudents(ctx context.Context, nameFilter string, limit int, exec ...core.DBExecutor) ([]Student, error)
		QueryActiveInstructors(ctx context.Context, exec ...core.DBExecutor) ([]Instructor, error)
		QueryParents(ctx context.Context, nameFilter string, limit int, exec ...core.DBExecutor) ([]Parent, error)
		GetStudent(ctx context.Context, id string, exec ...core.DBExecutor) (Student, error)
		GetInstructor(ctx context.Context, id string, exec ...core.DBExecutor) (Instructor, error)
		GetParent(ctx context.Context, id string, exec ...core.DBExecutor) (Parent, error)
	}

	// AdminRepository adds the write side used by administrative enrollment
	// (the admin CLI and test fixtures); the API only ever reads.
	AdminRepository interface {
		Repository

		CreateParent(ctx context.Context, p Parent, exec ...core.DBExecutor) (Parent, error)
		CreateStudent(ctx context.Context, s Student, exec ...core.DBExecutor) (Student, error)
		CreateInstructor(ctx context.Context, i Instructor, exec ...core.DBExecutor) (Instructor, error)
	}

	SearchResult struct {
		Parents  []Parent  `json:"parents"`
		Students []Student `json:"students"`
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Search resolves a fuzzy name query into ranked parent and student
// candidates. An empty query returns empty result sets rather than the full
// directory; the caller is asking for completion, not a dump.
func (svc *Service) Search(ctx context.Context, query string) (SearchResult, error) {
	res := SearchResult{Parents: []Parent{}, Students: []Student{}}

	query = core.CleanString(query)
	if query == "" {
		return res, nil
	}

	parents, err := svc.repo.QueryParents(ctx, query, maxParentResults)
	if err != nil {
		return res, err
	}
	students, err := svc.repo.QueryActiveStudents(ctx, query, maxStudentResults)
	if err != nil {
		return res, err
	}

	if parents != nil {
		res.Parents = parents
	}
	if students != nil {
		res.Students = students
	}
	return res, nil
}

// ActiveStudents lists active students, optionally narrowed by a name filter.
func (svc *Service) ActiveStudents(ctx context.Context, nameFilter string) ([]Student, error) {
	return svc.repo.QueryActiveStudents(ctx, core.CleanString(nameFilter), 0)
}

func (svc *Service) ActiveInstructors(ctx context.Context) ([]Instructor, error) {
	return svc.repo.QueryActiveInstructors(ctx)
}

func (svc *Service) GetStudent(ctx context.Context, id string) (Student, error) {
	return svc.repo.GetStudent(ctx, id)
}
