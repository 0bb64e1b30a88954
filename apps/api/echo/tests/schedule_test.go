package tests

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	. "github.com/nzaba/tempo/apps/api/echo"
	"github.com/nzaba/tempo/core/schedule"
	testutil "github.com/nzaba/tempo/tests"
)

func Test_scheduleApi_create(t *testing.T) {
	app := setup(t)

	smith := testutil.CreateParent(t, dirRepo, "Amina Smith", "555-0142", "amina@test.cd", "Joe 555-0199")
	brian := testutil.CreateStudent(t, dirRepo, "Brian Smith", smith, "0142", true)
	zoe := testutil.CreateStudent(t, dirRepo, "Zoe Smith", smith, "0142", true)
	coach := testutil.CreateInstructor(t, dirRepo, "Coach Eli", "4321", true)

	body := marchallObj(t, schedule.NewSession{
		Date:            "2026-09-01",
		StartTime:       "10:30",
		DurationMinutes: 45,
		LessonType:      schedule.LessonPrivate,
		ParentID:        smith.ID,
		Students: []schedule.NewSessionStudent{
			{StudentID: brian.ID},
			{StudentID: zoe.ID, InstructorID: coach.ID},
		},
	})
	req, rec := newRequest(http.MethodPost, "/v1/schedule", body)
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var created SessionCreatedResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshalling response: %v", err)
	}
	assert.NotEmpty(t, created.SessionID)

	// session and full roster land together
	req, rec = newRequest(http.MethodGet, "/v1/schedule/day?date=2026-09-01")
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	var day DayScheduleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &day); err != nil {
		t.Fatalf("unmarshalling response: %v", err)
	}
	if assert.Len(t, day.Sessions, 1) {
		sess := day.Sessions[0]
		assert.Equal(t, created.SessionID, sess.ID)
		assert.Equal(t, "10:30", sess.StartTime)
		assert.Equal(t, smith.Name, sess.ParentName)
		assert.Equal(t, smith.Phone, sess.ParentPhone)
		assert.Equal(t, smith.EmergencyContact, sess.EmergencyContact)
		if assert.Len(t, sess.Roster, 2) {
			want := map[string]schedule.RosterEntry{
				brian.ID: {StudentID: brian.ID, StudentName: brian.Name},
				zoe.ID:   {StudentID: zoe.ID, StudentName: zoe.Name, InstructorID: coach.ID, InstructorName: coach.Name},
			}
			for _, entry := range sess.Roster {
				assert.Equal(t, want[entry.StudentID], entry)
			}
		}
	}
}

func Test_scheduleApi_create_validation(t *testing.T) {
	app := setup(t)

	smith := testutil.CreateParent(t, dirRepo, "Amina Smith", "555-0142", "", "")
	brian := testutil.CreateStudent(t, dirRepo, "Brian Smith", smith, "0142", true)

	valid := schedule.NewSession{
		Date:            "2026-09-01",
		StartTime:       "10:30",
		DurationMinutes: 45,
		LessonType:      schedule.LessonGroup,
		ParentID:        smith.ID,
		Students:        []schedule.NewSessionStudent{{StudentID: brian.ID}},
	}

	tests := []httpTest{
		{
			name:   "Missing date",
			method: http.MethodPost, path: "/v1/schedule",
			body: marchallObj(t, func() schedule.NewSession {
				ns := valid
				ns.Date = ""
				return ns
			}()),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"date": "this field is required"}),
		},
		{
			name:   "Malformed date",
			method: http.MethodPost, path: "/v1/schedule",
			body: marchallObj(t, func() schedule.NewSession {
				ns := valid
				ns.Date = "2026-13-40"
				return ns
			}()),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"date": "must be a valid date in YYYY-MM-DD format"}),
		},
		{
			name:   "Malformed start time",
			method: http.MethodPost, path: "/v1/schedule",
			body: marchallObj(t, func() schedule.NewSession {
				ns := valid
				ns.StartTime = "10:30am"
				return ns
			}()),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"start_time": "must be a valid time in HH:MM format"}),
		},
		{
			name:   "Zero duration",
			method: http.MethodPost, path: "/v1/schedule",
			body: marchallObj(t, func() schedule.NewSession {
				ns := valid
				ns.DurationMinutes = 0
				return ns
			}()),
			wantCode: http.StatusBadRequest,
		},
		{
			name:   "Empty roster",
			method: http.MethodPost, path: "/v1/schedule",
			body: marchallObj(t, func() schedule.NewSession {
				ns := valid
				ns.Students = nil
				return ns
			}()),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"students": "this field is required"}),
		},
		{
			name:   "Duplicate student in roster",
			method: http.MethodPost, path: "/v1/schedule",
			body: marchallObj(t, func() schedule.NewSession {
				ns := valid
				ns.Students = []schedule.NewSessionStudent{{StudentID: brian.ID}, {StudentID: brian.ID}}
				return ns
			}()),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"students": "a student may appear only once per session"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_scheduleApi_day(t *testing.T) {
	app := setup(t)

	smith := testutil.CreateParent(t, dirRepo, "Amina Smith", "555-0142", "", "")
	brian := testutil.CreateStudent(t, dirRepo, "Brian Smith", smith, "0142", true)

	// same date and start time on purpose; both must survive
	late := testutil.CreateSession(t, schedRepo, "2026-09-02", "11:00", 60, schedule.LessonGroup, smith,
		[]schedule.RosterLink{testutil.RosterStudent(brian)})
	twinA := testutil.CreateSession(t, schedRepo, "2026-09-02", "09:00", 60, schedule.LessonGroup, smith, nil)
	twinB := testutil.CreateSession(t, schedRepo, "2026-09-02", "09:00", 60, schedule.LessonGroup, smith, nil,
		twinA.CreatedAt.Add(time.Minute))
	testutil.CreateSession(t, schedRepo, "2026-09-03", "09:00", 60, schedule.LessonGroup, smith, nil) // other day

	req, rec := newRequest(http.MethodGet, "/v1/schedule/day?date=2026-09-02")
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	var day DayScheduleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &day); err != nil {
		t.Fatalf("unmarshalling response: %v", err)
	}
	if assert.Len(t, day.Sessions, 3) {
		assert.Equal(t, twinA.ID, day.Sessions[0].ID) // start time, then creation order
		assert.Equal(t, twinB.ID, day.Sessions[1].ID)
		assert.Equal(t, late.ID, day.Sessions[2].ID)
		assert.Equal(t, []schedule.RosterEntry{}, day.Sessions[0].Roster)
	}

	tests := []httpTest{
		{
			name:     "Missing date",
			method:   http.MethodGet,
			path:     "/v1/schedule/day",
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"date": "must be a valid date in YYYY-MM-DD format"}),
		},
		{
			name:     "Malformed date",
			method:   http.MethodGet,
			path:     "/v1/schedule/day?date=tomorrow",
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"date": "must be a valid date in YYYY-MM-DD format"}),
		},
		{
			name:     "Empty day",
			method:   http.MethodGet,
			path:     "/v1/schedule/day?date=2030-01-01",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, DayScheduleResponse{Sessions: []schedule.DaySession{}}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_scheduleApi_today(t *testing.T) {
	app := setup(t)

	smith := testutil.CreateParent(t, dirRepo, "Amina Smith", "555-0142", "", "")
	today := time.Now().Format("2006-01-02")
	sess := testutil.CreateSession(t, schedRepo, today, "08:00", 30, schedule.LessonMommyMe, smith, nil)
	testutil.CreateSession(t, schedRepo, "1999-01-01", "08:00", 30, schedule.LessonMommyMe, smith, nil)

	req, rec := newRequest(http.MethodGet, "/v1/schedule/today")
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	var day DayScheduleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &day); err != nil {
		t.Fatalf("unmarshalling response: %v", err)
	}
	if assert.Len(t, day.Sessions, 1) {
		assert.Equal(t, sess.ID, day.Sessions[0].ID)
	}
}
