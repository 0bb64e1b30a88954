package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	. "github.com/nzaba/tempo/apps/api/echo"
	"github.com/nzaba/tempo/core"
	"github.com/nzaba/tempo/core/attendance"
	"github.com/nzaba/tempo/core/directory"
	"github.com/nzaba/tempo/core/note"
	"github.com/nzaba/tempo/core/schedule"
	"github.com/nzaba/tempo/core/timeclock"
	inmemdb "github.com/nzaba/tempo/storage/database/inmem"
)

var (
	dirRepo   directory.AdminRepository
	schedRepo schedule.Repository
	attRepo   inmemdb.AttendanceRepository
	clockRepo timeclock.Repository
	noteRepo  note.Repository
)

// setup builds a fresh store, the full service graph and a server per test
// so tests cannot see each other's data.
func setup(t *testing.T) Server {
	t.Helper()

	db := inmemdb.Open()
	dirRepo = inmemdb.NewDirectoryRepository(db)
	schedRepo = inmemdb.NewScheduleRepository(db)
	attRepo = inmemdb.NewAttendanceRepository(db)
	clockRepo = inmemdb.NewTimeclockRepository(db)
	noteRepo = inmemdb.NewNoteRepository(db)

	dirSvc := directory.NewService(dirRepo)

	return NewServer(ServerDeps{
		Conf: &core.Config{
			TestMode: true,
			Env:      "TEST",
			Server:   core.ServerConfig{RequestTimeout: 10 * time.Second},
		},
		Logger:        testLogger{t},
		DirectorySvc:  dirSvc,
		ScheduleSvc:   schedule.NewService(db, schedRepo),
		AttendanceSvc: attendance.NewService(attRepo, dirRepo),
		TimeclockSvc:  timeclock.NewService(db, clockRepo, dirRepo),
		NoteSvc:       note.NewService(noteRepo),
	})
}

// testLogger surfaces server-side errors in the test output.
type testLogger struct {
	t *testing.T
}

func (l testLogger) Debug(msg string, args ...interface{}) {}
func (l testLogger) Info(msg string, args ...interface{})  {}
func (l testLogger) Warn(msg string, args ...interface{})  {}
func (l testLogger) Error(msg string, args ...interface{}) { l.t.Logf("server error: %s %v", msg, args) }
func (l testLogger) Fatal(msg string, args ...interface{}) { l.t.Fatalf("server fatal: %s %v", msg, args) }

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ObjectsAreEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
