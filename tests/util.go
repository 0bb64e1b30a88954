package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/nzaba/tempo/core/directory"
	"github.com/nzaba/tempo/core/note"
	"github.com/nzaba/tempo/core/schedule"
	"github.com/nzaba/tempo/core/timeclock"
)

func CreateParent(
	t *testing.T,
	repo directory.AdminRepository,
	name, phone, email, emergency string,
) directory.Parent {
	parent, err := repo.CreateParent(context.Background(), directory.Parent{
		Name:             name,
		Phone:            phone,
		Email:            email,
		EmergencyContact: emergency,
	})
	if err != nil {
		t.Fatalf("CreateParent() failed: %v", err)
	}
	return parent
}

func CreateStudent(
	t *testing.T,
	repo directory.AdminRepository,
	name string,
	parent directory.Parent,
	secret string,
	isActive bool,
) directory.Student {
	student, err := repo.CreateStudent(context.Background(), directory.Student{
		Name:     name,
		IsActive: isActive,
		ParentID: parent.ID,
		Secret:   secret,
	})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return student
}

func CreateInstructor(
	t *testing.T,
	repo directory.AdminRepository,
	name, pin string,
	isActive bool,
) directory.Instructor {
	instructor, err := repo.CreateInstructor(context.Background(), directory.Instructor{
		Name:     name,
		IsActive: isActive,
		Secret:   pin,
	})
	if err != nil {
		t.Fatalf("CreateInstructor() failed: %v", err)
	}
	return instructor
}

func CreateSession(
	t *testing.T,
	repo schedule.Repository,
	date, startTime string,
	durationMinutes int,
	lessonType string,
	parent directory.Parent,
	links []schedule.RosterLink,
	createdAt ...time.Time,
) schedule.Session {
	ctx := context.Background()
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	sess, err := repo.CreateSession(ctx, schedule.Session{
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: durationMinutes,
		LessonType:      lessonType,
		ParentID:        parent.ID,
		CreatedAt:       tstamp,
	})
	if err != nil {
		t.Fatalf("CreateSession() failed: %v", err)
	}
	for i := range links {
		links[i].SessionID = sess.ID
	}
	if len(links) > 0 {
		if _, err = repo.CreateRosterLinks(ctx, links); err != nil {
			t.Fatalf("CreateSession() failed: %v", err)
		}
	}
	return sess
}

func RosterStudent(student directory.Student) schedule.RosterLink {
	return schedule.RosterLink{StudentID: student.ID}
}

func RosterStudentWithInstructor(student directory.Student, instructor directory.Instructor) schedule.RosterLink {
	return schedule.RosterLink{StudentID: student.ID, InstructorID: null.StringFrom(instructor.ID)}
}

func CreateNote(
	t *testing.T,
	repo note.Repository,
	student directory.Student,
	title, body string,
	createdAt ...time.Time,
) note.Note {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	n, err := repo.CreateNote(context.Background(), note.Note{
		StudentID: student.ID,
		Title:     null.NewString(title, title != ""),
		Note:      body,
		CreatedAt: tstamp,
	})
	if err != nil {
		t.Fatalf("CreateNote() failed: %v", err)
	}
	return n
}

func CreateOpenEntry(
	t *testing.T,
	repo timeclock.Repository,
	instructor directory.Instructor,
	clockInAt ...time.Time,
) timeclock.Entry {
	tstamp := time.Now().UTC()
	if len(clockInAt) > 0 {
		tstamp = clockInAt[0].UTC()
	}
	entry, err := repo.CreateEntry(context.Background(), timeclock.Entry{
		InstructorID: instructor.ID,
		ClockInAt:    tstamp,
	})
	if err != nil {
		t.Fatalf("CreateOpenEntry() failed: %v", err)
	}
	return entry
}
