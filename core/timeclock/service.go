package timeclock

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/nzaba/tempo/core"
	"github.com/nzaba/tempo/core/attendance"
	"github.com/nzaba/tempo/core/directory"
)

var (
	ErrNoOpenEntry = errors.New("no open time entry")

	// ErrEntryAlreadyOpen is returned by CreateEntry when the store refuses
	// a second open entry for the same instructor. It closes the race two
	// concurrent clock-ins have when both observed no open entry: row locks
	// cannot cover rows that do not exist yet, so the store itself arbitrates.
	ErrEntryAlreadyOpen = errors.New("an open time entry already exists")
)

type (
	Repository interface {
		// GetOpenEntry returns the most recent open entry for the instructor,
		// or ErrNoOpenEntry. When run inside a transaction the row (and the
		// instructor's insert path) must be locked so concurrent transitions
		// for the same instructor serialize.
		GetOpenEntry(ctx context.Context, instructorID string, exec ...core.DBExecutor) (Entry, error)
		// CreateEntry inserts the entry; an open entry when the instructor
		// already has one is rejected with ErrEntryAlreadyOpen.
		CreateEntry(ctx context.Context, entry Entry, exec ...core.DBExecutor) (Entry, error)
		CloseEntry(ctx context.Context, id string, at time.Time, exec ...core.DBExecutor) error
	}

	Service struct {
		db      core.DB
		repo    Repository
		dirRepo directory.Repository
	}
)

func NewService(db core.DB, repo Repository, dirRepo directory.Repository) *Service {
	return &Service{db: db, repo: repo, dirRepo: dirRepo}
}

// authorize runs the pre-transition guard shared by both operations: the
// instructor must exist, be active and present the right PIN. Failures here
// are auth errors, distinct from the state machine's informational results.
func (svc *Service) authorize(ctx context.Context, instructorID, pin string) (directory.Instructor, error) {
	instructor, err := svc.dirRepo.GetInstructor(ctx, instructorID)
	if err != nil {
		return directory.Instructor{}, err // directory.ErrNotFound or storage error
	}
	if !instructor.IsActive {
		return directory.Instructor{}, core.NewPermissionError("instructor is not active")
	}
	if !attendance.VerifySecret(instructor.Secret, attendance.SanitizePIN(pin)) {
		return directory.Instructor{}, core.NewAuthError("incorrect PIN")
	}
	return instructor, nil
}

// ClockIn opens a work interval for the instructor. Repeat attempts while
// already clocked in succeed with an informational result and create nothing;
// the open-entry invariant is upheld inside a single transaction.
func (svc *Service) ClockIn(ctx context.Context, instructorID, pin string) (Result, error) {
	instructor, err := svc.authorize(ctx, instructorID, pin)
	if err != nil {
		return Result{}, err
	}

	tx, err := svc.db.BeginTxx(ctx, nil)
	if err != nil {
		return Result{}, errors.Wrap(err, "beginning transaction")
	}
	defer func() { _ = tx.Rollback() }()

	_, err = svc.repo.GetOpenEntry(ctx, instructor.ID, tx)
	if err == nil {
		return Result{
			Status:  StatusAlreadyClockedIn,
			Message: fmt.Sprintf("%s is already clocked in.", instructor.Name),
		}, nil
	}
	if errors.Cause(err) != ErrNoOpenEntry {
		return Result{}, errors.Wrap(err, "checking open entry")
	}

	entry := Entry{
		InstructorID: instructor.ID,
		ClockInAt:    time.Now().UTC(),
		ClockOutAt:   null.Time{},
	}
	if _, err = svc.repo.CreateEntry(ctx, entry, tx); err != nil {
		// lost the race to a concurrent clock-in; report it, same as if the
		// other submission had landed first
		if errors.Cause(err) == ErrEntryAlreadyOpen {
			return Result{
				Status:  StatusAlreadyClockedIn,
				Message: fmt.Sprintf("%s is already clocked in.", instructor.Name),
			}, nil
		}
		return Result{}, errors.Wrap(err, "creating time entry")
	}
	if err = tx.Commit(); err != nil {
		return Result{}, errors.Wrap(err, "committing clock-in")
	}

	return Result{
		Status:  StatusClockedIn,
		Message: fmt.Sprintf("%s clocked IN.", instructor.Name),
	}, nil
}

// ClockOut closes the most recent open interval. With nothing open it returns
// an informational result and touches no rows.
func (svc *Service) ClockOut(ctx context.Context, instructorID, pin string) (Result, error) {
	instructor, err := svc.authorize(ctx, instructorID, pin)
	if err != nil {
		return Result{}, err
	}

	tx, err := svc.db.BeginTxx(ctx, nil)
	if err != nil {
		return Result{}, errors.Wrap(err, "beginning transaction")
	}
	defer func() { _ = tx.Rollback() }()

	open, err := svc.repo.GetOpenEntry(ctx, instructor.ID, tx)
	if err != nil {
		if errors.Cause(err) == ErrNoOpenEntry {
			return Result{
				Status:  StatusNotClockedIn,
				Message: fmt.Sprintf("%s has no active clock-in.", instructor.Name),
			}, nil
		}
		return Result{}, errors.Wrap(err, "checking open entry")
	}

	if err = svc.repo.CloseEntry(ctx, open.ID, time.Now().UTC(), tx); err != nil {
		return Result{}, errors.Wrap(err, "closing time entry")
	}
	if err = tx.Commit(); err != nil {
		return Result{}, errors.Wrap(err, "committing clock-out")
	}

	return Result{
		Status:  StatusClockedOut,
		Message: fmt.Sprintf("%s clocked OUT.", instructor.Name),
	}, nil
}
