package timeclock_test

import (
	"context"
	"sync"
	"testing"

	"github.com/nzaba/tempo/core"
	"github.com/nzaba/tempo/core/directory"
	"github.com/nzaba/tempo/core/timeclock"
	inmemdb "github.com/nzaba/tempo/storage/database/inmem"
	testutil "github.com/nzaba/tempo/tests"
)

func setup(t *testing.T) (*timeclock.Service, timeclock.Repository, directory.AdminRepository) {
	db := inmemdb.Open()
	dirRepo := inmemdb.NewDirectoryRepository(db)
	repo := inmemdb.NewTimeclockRepository(db)
	return timeclock.NewService(db, repo, dirRepo), repo, dirRepo
}

func TestService_transitions(t *testing.T) {
	svc, repo, dirRepo := setup(t)
	ctx := context.Background()

	eli := testutil.CreateInstructor(t, dirRepo, "Coach Eli", "4321", true)

	// nothing open yet
	res, err := svc.ClockOut(ctx, eli.ID, "4321")
	if err != nil {
		t.Fatalf("ClockOut() failed: %v", err)
	}
	if res.Status != timeclock.StatusNotClockedIn {
		t.Errorf("ClockOut() status = %v, want %v", res.Status, timeclock.StatusNotClockedIn)
	}

	res, err = svc.ClockIn(ctx, eli.ID, "4321")
	if err != nil {
		t.Fatalf("ClockIn() failed: %v", err)
	}
	if res.Status != timeclock.StatusClockedIn {
		t.Errorf("ClockIn() status = %v, want %v", res.Status, timeclock.StatusClockedIn)
	}
	first, err := repo.GetOpenEntry(ctx, eli.ID)
	if err != nil {
		t.Fatalf("GetOpenEntry() failed: %v", err)
	}

	// a repeat clock-in reports, and must not open a second entry
	res, err = svc.ClockIn(ctx, eli.ID, "4321")
	if err != nil {
		t.Fatalf("ClockIn() failed: %v", err)
	}
	if res.Status != timeclock.StatusAlreadyClockedIn {
		t.Errorf("ClockIn() status = %v, want %v", res.Status, timeclock.StatusAlreadyClockedIn)
	}
	still, err := repo.GetOpenEntry(ctx, eli.ID)
	if err != nil {
		t.Fatalf("GetOpenEntry() failed: %v", err)
	}
	if still.ID != first.ID {
		t.Errorf("open entry changed: got %v, want %v", still.ID, first.ID)
	}

	res, err = svc.ClockOut(ctx, eli.ID, "4321")
	if err != nil {
		t.Fatalf("ClockOut() failed: %v", err)
	}
	if res.Status != timeclock.StatusClockedOut {
		t.Errorf("ClockOut() status = %v, want %v", res.Status, timeclock.StatusClockedOut)
	}
	if _, err = repo.GetOpenEntry(ctx, eli.ID); err != timeclock.ErrNoOpenEntry {
		t.Errorf("GetOpenEntry() after close = %v, want ErrNoOpenEntry", err)
	}

	// closed entries stay closed; a new cycle opens a fresh one
	res, err = svc.ClockIn(ctx, eli.ID, "4321")
	if err != nil {
		t.Fatalf("ClockIn() failed: %v", err)
	}
	second, err := repo.GetOpenEntry(ctx, eli.ID)
	if err != nil {
		t.Fatalf("GetOpenEntry() failed: %v", err)
	}
	if second.ID == first.ID {
		t.Error("clock-in reopened a closed entry instead of creating a new one")
	}
}

func TestService_concurrentClockIn(t *testing.T) {
	svc, repo, dirRepo := setup(t)
	ctx := context.Background()

	eli := testutil.CreateInstructor(t, dirRepo, "Coach Eli", "4321", true)

	// simultaneous submissions from the kiosk must yield one open entry,
	// with the losers reported as already clocked in
	for round := 0; round < 5; round++ {
		const workers = 8
		start := make(chan struct{})
		results := make(chan timeclock.Result, workers)
		errs := make(chan error, workers)

		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				res, err := svc.ClockIn(ctx, eli.ID, "4321")
				if err != nil {
					errs <- err
					return
				}
				results <- res
			}()
		}
		close(start)
		wg.Wait()
		close(results)
		close(errs)

		for err := range errs {
			t.Fatalf("round %d: ClockIn() failed: %v", round, err)
		}
		var clockedIn, alreadyIn int
		for res := range results {
			switch res.Status {
			case timeclock.StatusClockedIn:
				clockedIn++
			case timeclock.StatusAlreadyClockedIn:
				alreadyIn++
			default:
				t.Errorf("round %d: unexpected status %v", round, res.Status)
			}
		}
		if clockedIn != 1 {
			t.Errorf("round %d: %d clock-ins succeeded, want 1", round, clockedIn)
		}
		if alreadyIn != workers-1 {
			t.Errorf("round %d: %d already-clocked-in reports, want %d", round, alreadyIn, workers-1)
		}

		// exactly one open entry means one clock-out closes everything
		if _, err := repo.GetOpenEntry(ctx, eli.ID); err != nil {
			t.Fatalf("round %d: GetOpenEntry() failed: %v", round, err)
		}
		res, err := svc.ClockOut(ctx, eli.ID, "4321")
		if err != nil {
			t.Fatalf("round %d: ClockOut() failed: %v", round, err)
		}
		if res.Status != timeclock.StatusClockedOut {
			t.Errorf("round %d: ClockOut() status = %v, want %v", round, res.Status, timeclock.StatusClockedOut)
		}
		res, err = svc.ClockOut(ctx, eli.ID, "4321")
		if err != nil {
			t.Fatalf("round %d: ClockOut() failed: %v", round, err)
		}
		if res.Status != timeclock.StatusNotClockedIn {
			t.Errorf("round %d: second ClockOut() status = %v, want %v", round, res.Status, timeclock.StatusNotClockedIn)
		}
	}
}

func TestService_authorization(t *testing.T) {
	svc, _, dirRepo := setup(t)
	ctx := context.Background()

	eli := testutil.CreateInstructor(t, dirRepo, "Coach Eli", "4321", true)
	gone := testutil.CreateInstructor(t, dirRepo, "Coach Gone", "1111", false)

	tests := []struct {
		name         string
		instructorID string
		pin          string
		wantErr      func(error) bool
	}{
		{
			name:         "unknown instructor",
			instructorID: "no-such-id",
			pin:          "4321",
			wantErr:      func(err error) bool { return err == directory.ErrNotFound },
		},
		{
			name:         "wrong PIN",
			instructorID: eli.ID,
			pin:          "0000",
			wantErr: func(err error) bool {
				_, ok := err.(*core.AuthError)
				return ok
			},
		},
		{
			name:         "deactivated instructor with right PIN",
			instructorID: gone.ID,
			pin:          "1111",
			wantErr: func(err error) bool {
				_, ok := err.(*core.PermissionError)
				return ok
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.ClockIn(ctx, tt.instructorID, tt.pin); !tt.wantErr(err) {
				t.Errorf("ClockIn() error = %v", err)
			}
			if _, err := svc.ClockOut(ctx, tt.instructorID, tt.pin); !tt.wantErr(err) {
				t.Errorf("ClockOut() error = %v", err)
			}
		})
	}
}
