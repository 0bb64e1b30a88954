package main

import (
	"context"
	"fmt"
	"testing"

	"github.com/nzaba/tempo/core/directory"
	"github.com/nzaba/tempo/storage/database"
	inmemdb "github.com/nzaba/tempo/storage/database/inmem"
)

var dirRepo directory.AdminRepository

func setup(t *testing.T) *commandLine {
	dirRepo = inmemdb.NewDirectoryRepository(inmemdb.Open())

	// start CLI; nothing here touches the SQL handle
	return &commandLine{
		db:      nil,
		dirRepo: dirRepo,
	}
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)

	migrateRunFunc = func(command string, db *database.DB, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "redo", "reset", "status", "version", "fix": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s requires a VERSION argument", command)
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to requires a VERSION argument"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "status", args: []string{"migrate", "status"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if tt.wantErr != nil {
					if err != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
			}
		})
	}
}

func Test_commandLine_enroll(t *testing.T) {
	cli := setup(t)
	ctx := context.Background()

	if err := cli.run([]string{"admin", "addparent", "-name", "Amina Smith", "-phone", "(555) 014-2042", "-email", "AMINA@test.cd"}); err != nil {
		t.Fatalf("addparent failed: %v", err)
	}
	parents, err := dirRepo.QueryParents(ctx, "amina", 0)
	if err != nil || len(parents) != 1 {
		t.Fatalf("parent not stored: %v", err)
	}
	parent := parents[0]
	if parent.Email != "amina@test.cd" {
		t.Errorf("email not normalized: %q", parent.Email)
	}

	if err := cli.run([]string{"admin", "addstudent", "-name", "Brian Smith", "-parent", parent.ID}); err != nil {
		t.Fatalf("addstudent failed: %v", err)
	}
	students, err := dirRepo.QueryActiveStudents(ctx, "brian", 0)
	if err != nil || len(students) != 1 {
		t.Fatalf("student not stored: %v", err)
	}
	if students[0].Secret != "2042" {
		t.Errorf("student secret = %q, want last 4 phone digits %q", students[0].Secret, "2042")
	}

	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("98-76"), nil }
	if err := cli.run([]string{"admin", "addinstructor", "-name", "Coach Eli"}); err != nil {
		t.Fatalf("addinstructor failed: %v", err)
	}
	instructors, err := dirRepo.QueryActiveInstructors(ctx)
	if err != nil || len(instructors) != 1 {
		t.Fatalf("instructor not stored: %v", err)
	}
	if instructors[0].Secret != "9876" {
		t.Errorf("instructor secret = %q, want sanitized PIN %q", instructors[0].Secret, "9876")
	}

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "addparent: no flags", args: []string{"addparent"}, wantErr: errHelp},
		{name: "addparent: phone too short", args: []string{"addparent", "-name", "X", "-phone", "123"}, wantErrStr: `phone number "123" has fewer than 4 digits`},
		{name: "addstudent: no flags", args: []string{"addstudent"}, wantErr: errHelp},
		{name: "addstudent: unknown parent", args: []string{"addstudent", "-name", "X", "-parent", "nope"}, wantErr: directory.ErrNotFound},
		{name: "addinstructor: no name", args: []string{"addinstructor"}, wantErr: errHelp},
		{name: "addinstructor: short PIN", args: []string{"addinstructor", "-name", "X"}, extra: "12", wantErrStr: "PIN must be exactly 4 digits"},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if pin, ok := tt.extra.(string); ok {
				return []byte(pin), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
			} else if tt.wantErrStr != "" {
				if err == nil || err.Error() != tt.wantErrStr {
					t.Errorf("cli.run() error = %v, wantErrStr %s", err, tt.wantErrStr)
				}
			} else if err != nil {
				t.Errorf("cli.run() unexpected error = %v", err)
			}
		})
	}
}
