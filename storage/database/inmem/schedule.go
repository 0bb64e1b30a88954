package inmemdb

import (
	"context"
	"sort"

	"github.com/nzaba/tempo/core"
	"github.com/nzaba/tempo/core/schedule"
)

type scheduleRepository struct {
	db *DB
}

var _ schedule.Repository = (*scheduleRepository)(nil)

func NewScheduleRepository(db *DB) schedule.Repository {
	return &scheduleRepository{db: db}
}

func (repo *scheduleRepository) CreateSession(
	ctx context.Context, sess schedule.Session, exec ...core.DBExecutor,
) (schedule.Session, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	sess.ID = newID()
	repo.db.sessions[sess.ID] = &sess
	return sess, nil
}

func (repo *scheduleRepository) CreateRosterLinks(
	ctx context.Context, links []schedule.RosterLink, exec ...core.DBExecutor,
) ([]schedule.RosterLink, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for i := range links {
		links[i].ID = newID()
		link := links[i]
		repo.db.rosterLinks[link.ID] = &link
	}
	return links, nil
}

func (repo *scheduleRepository) QueryDaySessions(
	ctx context.Context, date string, exec ...core.DBExecutor,
) ([]schedule.DaySession, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	sessions := make([]schedule.DaySession, 0)
	byID := make(map[string]int)
	for _, sess := range repo.db.sessions {
		if sess.Date != date {
			continue
		}
		ds := schedule.DaySession{Session: *sess, Roster: []schedule.RosterEntry{}}
		if p, ok := repo.db.parents[sess.ParentID]; ok {
			ds.ParentName = p.Name
			ds.ParentPhone = p.Phone
			ds.EmergencyContact = p.EmergencyContact
		}
		sessions = append(sessions, ds)
	}
	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].StartTime != sessions[j].StartTime {
			return sessions[i].StartTime < sessions[j].StartTime
		}
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})
	for i, sess := range sessions {
		byID[sess.ID] = i
	}

	links := make([]*schedule.RosterLink, 0, len(repo.db.rosterLinks))
	for _, link := range repo.db.rosterLinks {
		links = append(links, link)
	}
	sort.Slice(links, func(i, j int) bool { return links[i].ID < links[j].ID })

	for _, link := range links {
		idx, ok := byID[link.SessionID]
		if !ok {
			continue
		}
		student, ok := repo.db.students[link.StudentID]
		if !ok {
			// dangling link: filter, don't fail the day view
			continue
		}
		entry := schedule.RosterEntry{
			StudentID:   student.ID,
			StudentName: student.Name,
		}
		if link.InstructorID.Valid {
			entry.InstructorID = link.InstructorID.String
			if instr, ok := repo.db.instructors[link.InstructorID.String]; ok {
				entry.InstructorName = instr.Name
			}
		}
		sessions[idx].Roster = append(sessions[idx].Roster, entry)
	}
	return sessions, nil
}
