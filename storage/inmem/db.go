package inmemdb

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shulehq/shule/core/course"
	"github.com/shulehq/shule/core/grade"
	"github.com/shulehq/shule/core/user"
)

// Store owns the user, course and grade collections. All mutation goes
// through it; cross-collection rules (cascade deletes, reference checks) live
// here because no repository can enforce them alone.
//
// Collections are slices so that insertion order is preserved and observable
// through the query operations. A single RWMutex serializes concurrent
// callers; nothing here survives a process restart.
type Store struct {
	mutex   sync.RWMutex
	latency time.Duration
	newID   func() string

	users   []user.User
	courses []course.Course
	grades  []grade.Grade
}

type Option func(*Store)

// WithLatency applies a fixed simulated network round-trip to every store
// operation.
func WithLatency(d time.Duration) Option {
	return func(s *Store) { s.latency = d }
}

// WithIDFunc overrides the ID generator (tests).
func WithIDFunc(f func() string) Option {
	return func(s *Store) { s.newID = f }
}

func NewStore(opts ...Option) *Store {
	s := &Store{newID: uuid.NewString}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// delay models the network round-trip before any collection is touched, so a
// mutation is never observable in a partially applied state.
func (s *Store) delay(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.latency)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// callers must hold at least a read lock

func (s *Store) findUser(id string) (user.User, bool) {
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return user.User{}, false
}

func (s *Store) findCourse(id string) (course.Course, bool) {
	for _, c := range s.courses {
		if c.ID == id {
			return c, true
		}
	}
	return course.Course{}, false
}

// resolveCourse refreshes the denormalized teacher name from the current
// user record. The write-time copy is kept when the teacher has vanished
// (teacher deletion does not cascade courses).
func (s *Store) resolveCourse(c course.Course) course.Course {
	if t, ok := s.findUser(c.TeacherID); ok {
		c.TeacherName = t.Name
	}
	return c
}

func (s *Store) resolveGrade(g grade.Grade) grade.Grade {
	if stu, ok := s.findUser(g.StudentID); ok {
		g.StudentName = stu.Name
	}
	if c, ok := s.findCourse(g.CourseID); ok {
		g.CourseName = c.Name
	}
	return g
}
