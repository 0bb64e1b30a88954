// Package inmemdb is a map-backed store used by service and API tests.
// Repositories here ignore the optional executor arguments; atomicity is a
// property of each call holding the store lock.
package inmemdb

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"

	"github.com/nzaba/tempo/core"
	"github.com/nzaba/tempo/core/attendance"
	"github.com/nzaba/tempo/core/directory"
	"github.com/nzaba/tempo/core/note"
	"github.com/nzaba/tempo/core/schedule"
	"github.com/nzaba/tempo/core/timeclock"
)

type DB struct {
	mutex sync.RWMutex

	// txMutex serializes transactions: BeginTxx holds it until the returned
	// transactor commits or rolls back, so two concurrent clock transitions
	// never interleave between their reads and writes.
	txMutex sync.Mutex

	parents     map[string]*directory.Parent
	students    map[string]*directory.Student
	instructors map[string]*directory.Instructor
	sessions    map[string]*schedule.Session
	rosterLinks map[string]*schedule.RosterLink
	timeEntries map[string]*timeclock.Entry
	visits      map[string]*attendance.Event
	notes       map[string]*note.Note
}

var _ core.DB = (*DB)(nil)

func Open() *DB {
	return &DB{
		parents:     make(map[string]*directory.Parent),
		students:    make(map[string]*directory.Student),
		instructors: make(map[string]*directory.Instructor),
		sessions:    make(map[string]*schedule.Session),
		rosterLinks: make(map[string]*schedule.RosterLink),
		timeEntries: make(map[string]*timeclock.Entry),
		visits:      make(map[string]*attendance.Event),
		notes:       make(map[string]*note.Note),
	}
}

func (db *DB) BeginTxx(ctx context.Context, opts *sql.TxOptions) (core.DBTransactor, error) {
	db.txMutex.Lock()
	return &storeTx{db: db}, nil
}

// storeTx satisfies core.DBTransactor; the embedded executor is never invoked
// because inmem repositories ignore their executor arguments. Commit and
// Rollback release the store-wide transaction lock taken by BeginTxx.
type storeTx struct {
	core.DBExecutor

	db   *DB
	done bool
}

func (tx *storeTx) Commit() error   { return tx.release() }
func (tx *storeTx) Rollback() error { return tx.release() }

func (tx *storeTx) release() error {
	if tx.done {
		return sql.ErrTxDone
	}
	tx.done = true
	tx.db.txMutex.Unlock()
	return nil
}

func newID() string {
	return uuid.New().String()
}
