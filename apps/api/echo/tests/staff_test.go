package tests

import (
	"net/http"
	"testing"

	. "github.com/nzaba/tempo/apps/api/echo"
	"github.com/nzaba/tempo/core/directory"
	"github.com/nzaba/tempo/core/timeclock"
	testutil "github.com/nzaba/tempo/tests"
)

func Test_staffApi_queryInstructors(t *testing.T) {
	app := setup(t)

	eli := testutil.CreateInstructor(t, dirRepo, "Coach Eli", "4321", true)
	testutil.CreateInstructor(t, dirRepo, "Coach Gone", "1111", false) // inactive

	tt := httpTest{
		name:     "Only active instructors are listed",
		method:   http.MethodGet,
		path:     "/v1/staff/instructors",
		wantCode: http.StatusOK,
		wantData: marchallObj(t, map[string][]directory.Instructor{"instructors": {eli}}),
	}
	req, rec := newRequest(tt.method, tt.path)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, tt, rec)
}

func Test_staffApi_clock(t *testing.T) {
	app := setup(t)

	eli := testutil.CreateInstructor(t, dirRepo, "Coach Eli", "4321", true)
	gone := testutil.CreateInstructor(t, dirRepo, "Coach Gone", "1111", false)

	clockBody := func(id, pin, action string) []byte {
		return marchallObj(t, ClockRequest{InstructorID: id, PIN: pin, Action: action})
	}

	// transitions are order-dependent; the sequence exercises the whole state machine
	tests := []httpTest{
		{
			name:     "Clock in opens an entry",
			method:   http.MethodPost,
			path:     "/v1/staff/clock",
			body:     clockBody(eli.ID, "4321", "in"),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, timeclock.Result{Status: timeclock.StatusClockedIn, Message: "Coach Eli clocked IN."}),
		},
		{
			name:     "Second clock in is informational",
			method:   http.MethodPost,
			path:     "/v1/staff/clock",
			body:     clockBody(eli.ID, "4321", "in"),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, timeclock.Result{Status: timeclock.StatusAlreadyClockedIn, Message: "Coach Eli is already clocked in."}),
		},
		{
			name:     "Clock out closes the single open entry",
			method:   http.MethodPost,
			path:     "/v1/staff/clock",
			body:     clockBody(eli.ID, "4321", "out"),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, timeclock.Result{Status: timeclock.StatusClockedOut, Message: "Coach Eli clocked OUT."}),
		},
		{
			name:     "Clock out with nothing open is informational",
			method:   http.MethodPost,
			path:     "/v1/staff/clock",
			body:     clockBody(eli.ID, "4321", "out"),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, timeclock.Result{Status: timeclock.StatusNotClockedIn, Message: "Coach Eli has no active clock-in."}),
		},
		{
			name:     "Wrong PIN",
			method:   http.MethodPost,
			path:     "/v1/staff/clock",
			body:     clockBody(eli.ID, "0000", "in"),
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, httpErr{Error: "incorrect PIN"}),
		},
		{
			name:     "Deactivated instructor",
			method:   http.MethodPost,
			path:     "/v1/staff/clock",
			body:     clockBody(gone.ID, "1111", "in"),
			wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "instructor is not active"}),
		},
		{
			name:     "Unknown instructor is a bad request",
			method:   http.MethodPost,
			path:     "/v1/staff/clock",
			body:     clockBody("no-such-id", "4321", "in"),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"instructor_id": "unknown instructor"}),
		},
		{
			name:     "Unknown action",
			method:   http.MethodPost,
			path:     "/v1/staff/clock",
			body:     clockBody(eli.ID, "4321", "pause"),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "Missing PIN",
			method:   http.MethodPost,
			path:     "/v1/staff/clock",
			body:     clockBody(eli.ID, "", "in"),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"pin": "this field is required"}),
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
