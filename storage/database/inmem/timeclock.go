package inmemdb

import (
	"context"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/nzaba/tempo/core"
	"github.com/nzaba/tempo/core/timeclock"
)

type timeclockRepository struct {
	db *DB
}

var _ timeclock.Repository = (*timeclockRepository)(nil)

func NewTimeclockRepository(db *DB) timeclock.Repository {
	return &timeclockRepository{db: db}
}

func (repo *timeclockRepository) GetOpenEntry(
	ctx context.Context, instructorID string, exec ...core.DBExecutor,
) (timeclock.Entry, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	var open *timeclock.Entry
	for _, e := range repo.db.timeEntries {
		if e.InstructorID != instructorID || !e.IsOpen() {
			continue
		}
		if open == nil || e.ClockInAt.After(open.ClockInAt) {
			open = e
		}
	}
	if open == nil {
		return timeclock.Entry{}, timeclock.ErrNoOpenEntry
	}
	return *open, nil
}

func (repo *timeclockRepository) CreateEntry(
	ctx context.Context, entry timeclock.Entry, exec ...core.DBExecutor,
) (timeclock.Entry, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if entry.IsOpen() {
		for _, e := range repo.db.timeEntries {
			if e.InstructorID == entry.InstructorID && e.IsOpen() {
				return timeclock.Entry{}, timeclock.ErrEntryAlreadyOpen
			}
		}
	}
	entry.ID = newID()
	repo.db.timeEntries[entry.ID] = &entry
	return entry, nil
}

func (repo *timeclockRepository) CloseEntry(
	ctx context.Context, id string, at time.Time, exec ...core.DBExecutor,
) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	e, ok := repo.db.timeEntries[id]
	if !ok || !e.IsOpen() {
		return timeclock.ErrNoOpenEntry
	}
	e.ClockOutAt = null.TimeFrom(at)
	return nil
}
