package inmemdb

import (
	"context"

	"github.com/nzaba/tempo/core"
	"github.com/nzaba/tempo/core/attendance"
)

// AttendanceRepository also exposes the recorded events for assertions.
type AttendanceRepository interface {
	attendance.Repository
	Events() []attendance.Event
}

type attendanceRepository struct {
	db *DB
}

var _ AttendanceRepository = (*attendanceRepository)(nil)

func NewAttendanceRepository(db *DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (repo *attendanceRepository) CreateEvent(
	ctx context.Context, evt attendance.Event, exec ...core.DBExecutor,
) (attendance.Event, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	evt.ID = newID()
	repo.db.visits[evt.ID] = &evt
	return evt, nil
}

// Events lists all recorded check-ins; test helper.
func (repo *attendanceRepository) Events() []attendance.Event {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	events := make([]attendance.Event, 0, len(repo.db.visits))
	for _, evt := range repo.db.visits {
		events = append(events, *evt)
	}
	return events
}
