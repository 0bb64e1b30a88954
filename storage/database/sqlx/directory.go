package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/nzaba/tempo/core"
	"github.com/nzaba/tempo/core/directory"
)

type directoryRepository struct {
	exec core.DBExecutor
}

var _ directory.AdminRepository = (*directoryRepository)(nil) // interface compliance check

func NewDirectoryRepository(exec core.DBExecutor) directory.AdminRepository {
	return &directoryRepository{exec: exec}
}

type (
	dbStudent struct {
		ID         string    `db:"id"`
		Name       string    `db:"name"`
		Active     bool      `db:"active"`
		ParentID   string    `db:"parent_id"`
		Secret     string    `db:"parent_phone_last4"`
		ParentName string    `db:"parent_name"`
		CreatedAt  time.Time `db:"created_at"`
	}

	dbParent struct {
		ID               string    `db:"id"`
		Name             string    `db:"name"`
		Phone            string    `db:"phone"`
		Email            string    `db:"email"`
		EmergencyContact string    `db:"emergency_contact"`
		CreatedAt        time.Time `db:"created_at"`
	}

	dbInstructor struct {
		ID        string    `db:"id"`
		Name      string    `db:"name"`
		Active    bool      `db:"active"`
		Secret    string    `db:"pin_last4"`
		CreatedAt time.Time `db:"created_at"`
	}
)

func (repo directoryRepository) unrowStudent(s dbStudent) directory.Student {
	return directory.Student{
		ID:         s.ID,
		Name:       s.Name,
		IsActive:   s.Active,
		ParentID:   s.ParentID,
		Secret:     s.Secret,
		ParentName: s.ParentName,
		CreatedAt:  s.CreatedAt,
	}
}

func (repo directoryRepository) unrowParent(p dbParent) directory.Parent {
	return directory.Parent{
		ID:               p.ID,
		Name:             p.Name,
		Phone:            p.Phone,
		Email:            p.Email,
		EmergencyContact: p.EmergencyContact,
		CreatedAt:        p.CreatedAt,
	}
}

func (repo directoryRepository) unrowInstructor(i dbInstructor) directory.Instructor {
	return directory.Instructor{
		ID:        i.ID,
		Name:      i.Name,
		IsActive:  i.Active,
		Secret:    i.Secret,
		CreatedAt: i.CreatedAt,
	}
}

// trapNoRowsErr maps psql "no rows" err to directory.ErrNotFound
func (repo directoryRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return directory.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo directoryRepository) studentQuery() sq.SelectBuilder {
	return psql.Select(
		"s.id", "s.name", "s.active", "s.parent_id", "s.parent_phone_last4", "s.created_at",
		"COALESCE(p.name, '') AS parent_name",
	).
		From("students s").
		LeftJoin("parents p ON p.id = s.parent_id")
}

func (repo directoryRepository) QueryActiveStudents(
	ctx context.Context, nameFilter string, limit int, exec ...core.DBExecutor,
) ([]directory.Student, error) {
	qb := repo.studentQuery().
		Where(sq.Eq{"s.active": true}).
		OrderBy("s.name ASC")
	if nameFilter != "" {
		qb = qb.Where("s.name ILIKE ?", "%"+nameFilter+"%")
	}
	if limit > 0 {
		qb = qb.Limit(uint64(limit))
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building students query")
	}

	var rows []dbStudent
	if err = sqlx.SelectContext(ctx, getExec(repo.exec, exec), &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying students")
	}

	students := make([]directory.Student, 0, len(rows))
	for _, row := range rows {
		students = append(students, repo.unrowStudent(row))
	}
	return students, nil
}

func (repo directoryRepository) QueryActiveInstructors(
	ctx context.Context, exec ...core.DBExecutor,
) ([]directory.Instructor, error) {
	query, args, err := psql.Select("id", "name", "active", "pin_last4", "created_at").
		From("instructors").
		Where(sq.Eq{"active": true}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building instructors query")
	}

	var rows []dbInstructor
	if err = sqlx.SelectContext(ctx, getExec(repo.exec, exec), &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying instructors")
	}

	instructors := make([]directory.Instructor, 0, len(rows))
	for _, row := range rows {
		instructors = append(instructors, repo.unrowInstructor(row))
	}
	return instructors, nil
}

func (repo directoryRepository) QueryParents(
	ctx context.Context, nameFilter string, limit int, exec ...core.DBExecutor,
) ([]directory.Parent, error) {
	qb := psql.Select("id", "name", "phone", "email", "emergency_contact", "created_at").
		From("parents").
		OrderBy("name ASC")
	if nameFilter != "" {
		qb = qb.Where("name ILIKE ?", "%"+nameFilter+"%")
	}
	if limit > 0 {
		qb = qb.Limit(uint64(limit))
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building parents query")
	}

	var rows []dbParent
	if err = sqlx.SelectContext(ctx, getExec(repo.exec, exec), &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying parents")
	}

	parents := make([]directory.Parent, 0, len(rows))
	for _, row := range rows {
		parents = append(parents, repo.unrowParent(row))
	}
	return parents, nil
}

func (repo directoryRepository) GetStudent(
	ctx context.Context, id string, exec ...core.DBExecutor,
) (directory.Student, error) {
	query, args, err := repo.studentQuery().Where(sq.Eq{"s.id": id}).ToSql()
	if err != nil {
		return directory.Student{}, errors.Wrap(err, "building student query")
	}

	var row dbStudent
	if err = sqlx.GetContext(ctx, getExec(repo.exec, exec), &row, query, args...); err != nil {
		return directory.Student{}, repo.trapNoRowsErr(err, "getting student")
	}
	return repo.unrowStudent(row), nil
}

func (repo directoryRepository) GetInstructor(
	ctx context.Context, id string, exec ...core.DBExecutor,
) (directory.Instructor, error) {
	query, args, err := psql.Select("id", "name", "active", "pin_last4", "created_at").
		From("instructors").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return directory.Instructor{}, errors.Wrap(err, "building instructor query")
	}

	var row dbInstructor
	if err = sqlx.GetContext(ctx, getExec(repo.exec, exec), &row, query, args...); err != nil {
		return directory.Instructor{}, repo.trapNoRowsErr(err, "getting instructor")
	}
	return repo.unrowInstructor(row), nil
}

func (repo directoryRepository) GetParent(
	ctx context.Context, id string, exec ...core.DBExecutor,
) (directory.Parent, error) {
	query, args, err := psql.Select("id", "name", "phone", "email", "emergency_contact", "created_at").
		From("parents").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return directory.Parent{}, errors.Wrap(err, "building parent query")
	}

	var row dbParent
	if err = sqlx.GetContext(ctx, getExec(repo.exec, exec), &row, query, args...); err != nil {
		return directory.Parent{}, repo.trapNoRowsErr(err, "getting parent")
	}
	return repo.unrowParent(row), nil
}

// CreateParent, CreateStudent and CreateInstructor back the admin seeding
// CLI; the API never writes directory records.

func (repo directoryRepository) CreateParent(
	ctx context.Context, p directory.Parent, exec ...core.DBExecutor,
) (directory.Parent, error) {
	p.ID = newID()
	p.CreatedAt = time.Now().UTC()

	query, args, err := psql.Insert("parents").
		Columns("id", "name", "phone", "email", "emergency_contact", "created_at").
		Values(p.ID, p.Name, p.Phone, p.Email, p.EmergencyContact, p.CreatedAt).
		ToSql()
	if err != nil {
		return directory.Parent{}, errors.Wrap(err, "building parent insert")
	}
	if _, err = getExec(repo.exec, exec).ExecContext(ctx, query, args...); err != nil {
		return directory.Parent{}, errors.Wrap(err, "inserting parent")
	}
	return p, nil
}

func (repo directoryRepository) CreateStudent(
	ctx context.Context, s directory.Student, exec ...core.DBExecutor,
) (directory.Student, error) {
	s.ID = newID()
	s.CreatedAt = time.Now().UTC()

	query, args, err := psql.Insert("students").
		Columns("id", "name", "active", "parent_id", "parent_phone_last4", "created_at").
		Values(s.ID, s.Name, s.IsActive, s.ParentID, s.Secret, s.CreatedAt).
		ToSql()
	if err != nil {
		return directory.Student{}, errors.Wrap(err, "building student insert")
	}
	if _, err = getExec(repo.exec, exec).ExecContext(ctx, query, args...); err != nil {
		return directory.Student{}, errors.Wrap(err, "inserting student")
	}
	return s, nil
}

func (repo directoryRepository) CreateInstructor(
	ctx context.Context, i directory.Instructor, exec ...core.DBExecutor,
) (directory.Instructor, error) {
	i.ID = newID()
	i.CreatedAt = time.Now().UTC()

	query, args, err := psql.Insert("instructors").
		Columns("id", "name", "active", "pin_last4", "created_at").
		Values(i.ID, i.Name, i.IsActive, i.Secret, i.CreatedAt).
		ToSql()
	if err != nil {
		return directory.Instructor{}, errors.Wrap(err, "building instructor insert")
	}
	if _, err = getExec(repo.exec, exec).ExecContext(ctx, query, args...); err != nil {
		return directory.Instructor{}, errors.Wrap(err, "inserting instructor")
	}
	return i, nil
}
