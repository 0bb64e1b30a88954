package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nzaba/tempo/core/directory"
	testutil "github.com/nzaba/tempo/tests"
)

func Test_directoryApi_search(t *testing.T) {
	app := setup(t)

	smith := testutil.CreateParent(t, dirRepo, "Amina Smith", "555-0142", "amina@test.cd", "")
	jones := testutil.CreateParent(t, dirRepo, "Carl Jones", "555-0987", "", "")

	brian := testutil.CreateStudent(t, dirRepo, "Brian Smith", smith, "0142", true)
	testutil.CreateStudent(t, dirRepo, "Zoe Smith", smith, "0142", false) // inactive
	dana := testutil.CreateStudent(t, dirRepo, "Dana Jones", jones, "0987", true)

	brian.ParentName = smith.Name
	dana.ParentName = jones.Name

	empty := marchallObj(t, directory.SearchResult{Parents: []directory.Parent{}, Students: []directory.Student{}})

	tests := []httpTest{
		{
			name:     "No query returns empty sets",
			method:   http.MethodGet,
			path:     "/v1/search",
			wantCode: http.StatusOK,
			wantData: empty,
		},
		{
			name:     "Blank query returns empty sets",
			method:   http.MethodGet,
			path:     "/v1/search?q=%20%20",
			wantCode: http.StatusOK,
			wantData: empty,
		},
		{
			name:     "No match returns empty sets",
			method:   http.MethodGet,
			path:     "/v1/search?q=nobody",
			wantCode: http.StatusOK,
			wantData: empty,
		},
		{
			name:     "Match is case-insensitive; inactive students are hidden",
			method:   http.MethodGet,
			path:     "/v1/search?q=SMITH",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, directory.SearchResult{
				Parents:  []directory.Parent{smith},
				Students: []directory.Student{brian},
			}),
		},
		{
			name:     "Query matching both families",
			method:   http.MethodGet,
			path:     "/v1/search?q=s",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, directory.SearchResult{
				Parents:  []directory.Parent{smith, jones}, // alphabetical by name
				Students: []directory.Student{brian, dana},
			}),
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

func Test_directoryApi_search_caps(t *testing.T) {
	app := setup(t)

	crowd := testutil.CreateParent(t, dirRepo, "Crowd Parent 00", "555-1000", "", "")
	for i := 1; i < 20; i++ {
		testutil.CreateParent(t, dirRepo, fmt.Sprintf("Crowd Parent %02d", i), "555-1000", "", "")
	}
	for i := 0; i < 30; i++ {
		testutil.CreateStudent(t, dirRepo, fmt.Sprintf("Crowd Student %02d", i), crowd, "1000", true)
	}

	req, rec := newRequest(http.MethodGet, "/v1/search?q=crowd")
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	var res directory.SearchResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("unmarshalling response: %v", err)
	}
	assert.Len(t, res.Parents, 15)
	assert.Len(t, res.Students, 25)
}

func Test_directoryApi_queryStudents(t *testing.T) {
	app := setup(t)

	smith := testutil.CreateParent(t, dirRepo, "Amina Smith", "555-0142", "", "")
	brian := testutil.CreateStudent(t, dirRepo, "Brian Smith", smith, "0142", true)
	testutil.CreateStudent(t, dirRepo, "Zoe Smith", smith, "0142", false) // inactive
	brian.ParentName = smith.Name

	tests := []httpTest{
		{
			name:     "Unfiltered list returns all active students",
			method:   http.MethodGet,
			path:     "/v1/students",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, map[string][]directory.Student{"students": {brian}}),
		},
		{
			name:     "Filter narrows by name",
			method:   http.MethodGet,
			path:     "/v1/students?q=zzz",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, map[string][]directory.Student{"students": {}}),
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
