package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/nzaba/tempo/core"
	"github.com/nzaba/tempo/core/directory"
)

var (
	errPINMismatch = "PIN does not match"
	errPINLength   = fmt.Sprintf("enter the last %d digits of the parent phone number", pinLength)
)

type (
	// Event is one student check-in. Append-only.
	Event struct {
		ID        string    `json:"id"`
		StudentID string    `json:"student_id"`
		CreatedAt time.Time `json:"created_at"`
	}

	Repository interface {
		CreateEvent(ctx context.Context, evt Event, exec ...core.DBExecutor) (Event, error)
	}

	// Confirmation carries what the kiosk shows after a successful check-in.
	Confirmation struct {
		StudentName string `json:"student_name"`
		Message     string `json:"message"`
	}

	Service struct {
		repo    Repository
		dirRepo directory.Repository
	}
)

func NewService(repo Repository, dirRepo directory.Repository) *Service {
	return &Service{repo: repo, dirRepo: dirRepo}
}

// CheckIn verifies the parent PIN for the student and appends one attendance
// event. A student that cannot be looked up is reported as a failed PIN
// check, not a system fault: the kiosk must not leak which ids exist.
func (svc *Service) CheckIn(ctx context.Context, studentID, pin string) (Confirmation, error) {
	pin = SanitizePIN(pin)
	if len(pin) != pinLength {
		return Confirmation{}, core.NewValidationError(nil, core.FieldError{Field: "pin", Error: errPINLength})
	}

	student, err := svc.dirRepo.GetStudent(ctx, studentID)
	if err != nil {
		if errors.Cause(err) == directory.ErrNotFound {
			return Confirmation{}, core.NewAuthError(errPINMismatch)
		}
		return Confirmation{}, errors.Wrap(err, "looking up student")
	}
	if !student.IsActive {
		return Confirmation{}, core.NewPermissionError("student is not active")
	}
	if !VerifySecret(student.Secret, pin) {
		return Confirmation{}, core.NewAuthError(errPINMismatch)
	}

	if _, err = svc.repo.CreateEvent(ctx, Event{StudentID: student.ID, CreatedAt: time.Now().UTC()}); err != nil {
		return Confirmation{}, errors.Wrap(err, "recording check-in")
	}

	return Confirmation{
		StudentName: student.Name,
		Message:     fmt.Sprintf("%s checked in!", student.Name),
	}, nil
}
