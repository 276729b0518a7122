package portal

import (
	"context"
	"errors"

	"github.com/shulehq/shule/core/course"
	"github.com/shulehq/shule/core/grade"
	"github.com/shulehq/shule/core/user"
)

// ErrNotCourseOwner signals a grade operation against a course the acting
// teacher does not own.
var ErrNotCourseOwner = errors.New("course is not owned by this teacher")

type TeacherPortal struct {
	self      user.User
	courseSvc *course.Service
	gradeSvc  *grade.Service
}

func NewTeacherPortal(self user.User, courseSvc *course.Service, gradeSvc *grade.Service) (*TeacherPortal, error) {
	if !self.IsTeacher() {
		return nil, ErrRoleMismatch
	}
	return &TeacherPortal{self: self, courseSvc: courseSvc, gradeSvc: gradeSvc}, nil
}

func (p *TeacherPortal) Self() user.User { return p.self }

// Courses returns the courses owned by the acting teacher.
func (p *TeacherPortal) Courses(ctx context.Context) ([]course.Course, error) {
	return p.courseSvc.QueryByTeacher(ctx, p.self.ID)
}

// ownedCourse is the enforcement point for course ownership; every grade
// operation resolves through it first.
func (p *TeacherPortal) ownedCourse(ctx context.Context, courseID string) (course.Course, error) {
	c, err := p.courseSvc.GetByID(ctx, courseID)
	if err != nil {
		return course.Course{}, err
	}
	if c.TeacherID != p.self.ID {
		return course.Course{}, ErrNotCourseOwner
	}
	return c, nil
}

func (p *TeacherPortal) CourseGrades(ctx context.Context, courseID string) ([]grade.Grade, error) {
	if _, err := p.ownedCourse(ctx, courseID); err != nil {
		return nil, err
	}
	return p.gradeSvc.QueryByCourse(ctx, courseID)
}

func (p *TeacherPortal) AddGrade(ctx context.Context, ng grade.NewGrade) (grade.Grade, error) {
	if _, err := p.ownedCourse(ctx, ng.CourseID); err != nil {
		return grade.Grade{}, err
	}
	return p.gradeSvc.Create(ctx, ng)
}

func (p *TeacherPortal) UpdateGrade(ctx context.Context, gradeID string, score float64) (grade.Grade, error) {
	g, err := p.gradeSvc.GetByID(ctx, gradeID)
	if err != nil {
		return grade.Grade{}, err
	}
	if _, err = p.ownedCourse(ctx, g.CourseID); err != nil {
		return grade.Grade{}, err
	}
	return p.gradeSvc.UpdateScore(ctx, gradeID, score)
}
