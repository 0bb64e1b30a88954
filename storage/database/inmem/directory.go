package inmemdb

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/nzaba/tempo/core"
	"github.com/nzaba/tempo/core/directory"
)

type directoryRepository struct {
	db *DB
}

var _ directory.AdminRepository = (*directoryRepository)(nil)

func NewDirectoryRepository(db *DB) directory.AdminRepository {
	return &directoryRepository{db: db}
}

func nameMatches(name, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(filter))
}

func (repo *directoryRepository) enrich(s directory.Student) directory.Student {
	if p, ok := repo.db.parents[s.ParentID]; ok {
		s.ParentName = p.Name
	}
	return s
}

func (repo *directoryRepository) QueryActiveStudents(
	ctx context.Context, nameFilter string, limit int, exec ...core.DBExecutor,
) ([]directory.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	students := make([]directory.Student, 0, len(repo.db.students))
	for _, s := range repo.db.students {
		if s.IsActive && nameMatches(s.Name, nameFilter) {
			students = append(students, repo.enrich(*s))
		}
	}
	sort.Slice(students, func(i, j int) bool { return students[i].Name < students[j].Name })
	if limit > 0 && len(students) > limit {
		students = students[:limit]
	}
	return students, nil
}

func (repo *directoryRepository) QueryActiveInstructors(
	ctx context.Context, exec ...core.DBExecutor,
) ([]directory.Instructor, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	instructors := make([]directory.Instructor, 0, len(repo.db.instructors))
	for _, i := range repo.db.instructors {
		if i.IsActive {
			instructors = append(instructors, *i)
		}
	}
	sort.Slice(instructors, func(i, j int) bool { return instructors[i].Name < instructors[j].Name })
	return instructors, nil
}

func (repo *directoryRepository) QueryParents(
	ctx context.Context, nameFilter string, limit int, exec ...core.DBExecutor,
) ([]directory.Parent, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	parents := make([]directory.Parent, 0, len(repo.db.parents))
	for _, p := range repo.db.parents {
		if nameMatches(p.Name, nameFilter) {
			parents = append(parents, *p)
		}
	}
	sort.Slice(parents, func(i, j int) bool { return parents[i].Name < parents[j].Name })
	if limit > 0 && len(parents) > limit {
		parents = parents[:limit]
	}
	return parents, nil
}

func (repo *directoryRepository) GetStudent(
	ctx context.Context, id string, exec ...core.DBExecutor,
) (directory.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if s, ok := repo.db.students[id]; ok {
		return repo.enrich(*s), nil
	}
	return directory.Student{}, directory.ErrNotFound
}

func (repo *directoryRepository) GetInstructor(
	ctx context.Context, id string, exec ...core.DBExecutor,
) (directory.Instructor, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if i, ok := repo.db.instructors[id]; ok {
		return *i, nil
	}
	return directory.Instructor{}, directory.ErrNotFound
}

func (repo *directoryRepository) GetParent(
	ctx context.Context, id string, exec ...core.DBExecutor,
) (directory.Parent, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if p, ok := repo.db.parents[id]; ok {
		return *p, nil
	}
	return directory.Parent{}, directory.ErrNotFound
}

func (repo *directoryRepository) CreateParent(
	ctx context.Context, p directory.Parent, exec ...core.DBExecutor,
) (directory.Parent, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	p.ID = newID()
	p.CreatedAt = time.Now().UTC()
	repo.db.parents[p.ID] = &p
	return p, nil
}

func (repo *directoryRepository) CreateStudent(
	ctx context.Context, s directory.Student, exec ...core.DBExecutor,
) (directory.Student, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	s.ID = newID()
	s.CreatedAt = time.Now().UTC()
	repo.db.students[s.ID] = &s
	return s, nil
}

func (repo *directoryRepository) CreateInstructor(
	ctx context.Context, i directory.Instructor, exec ...core.DBExecutor,
) (directory.Instructor, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	i.ID = newID()
	i.CreatedAt = time.Now().UTC()
	repo.db.instructors[i.ID] = &i
	return i, nil
}
