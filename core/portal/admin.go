package portal

import (
	"context"
	"errors"
	"fmt"

	"github.com/shulehq/shule/core"
	"github.com/shulehq/shule/core/course"
	"github.com/shulehq/shule/core/grade"
	"github.com/shulehq/shule/core/user"
)

// ErrNoTeacher signals a course import with nobody to attribute courses to.
var ErrNoTeacher = errors.New("no teacher on file to own imported courses")

type AdminPortal struct {
	self      user.User
	userSvc   *user.Service
	courseSvc *course.Service
	gradeSvc  *grade.Service
	generator core.CourseGenerator
	logger    core.Logger
}

func NewAdminPortal(
	self user.User,
	userSvc *user.Service,
	courseSvc *course.Service,
	gradeSvc *grade.Service,
	generator core.CourseGenerator,
	logger core.Logger,
) (*AdminPortal, error) {
	if !self.IsAdmin() {
		return nil, ErrRoleMismatch
	}
	return &AdminPortal{
		self:      self,
		userSvc:   userSvc,
		courseSvc: courseSvc,
		gradeSvc:  gradeSvc,
		generator: generator,
		logger:    logger,
	}, nil
}

func (p *AdminPortal) Self() user.User { return p.self }

func (p *AdminPortal) Users(ctx context.Context) ([]user.User, error) {
	return p.userSvc.QueryAll(ctx)
}

func (p *AdminPortal) Courses(ctx context.Context) ([]course.Course, error) {
	return p.courseSvc.QueryAll(ctx)
}

func (p *AdminPortal) CourseGrades(ctx context.Context, courseID string) ([]grade.Grade, error) {
	return p.gradeSvc.QueryByCourse(ctx, courseID)
}

func (p *AdminPortal) AddUser(ctx context.Context, nu user.NewUser) (user.User, error) {
	return p.userSvc.Create(ctx, nu)
}

// DeleteUser removes a user and their grades. Admin accounts are refused.
func (p *AdminPortal) DeleteUser(ctx context.Context, id string) error {
	return p.userSvc.Delete(ctx, id)
}

func (p *AdminPortal) AddCourse(ctx context.Context, nc course.NewCourse) (course.Course, error) {
	return p.courseSvc.Create(ctx, nc)
}

// DeleteCourse removes a course and its grades.
func (p *AdminPortal) DeleteCourse(ctx context.Context, id string) error {
	return p.courseSvc.Delete(ctx, id)
}

// ImportCourses asks the configured generator for candidate courses on the
// topic and adds each one through the store. The courses are attributed to
// the first teacher on file. An empty result is
// a reportable outcome, not an error; the caller announces "0 imported".
func (p *AdminPortal) ImportCourses(ctx context.Context, topic string) ([]course.Course, error) {
	users, err := p.userSvc.QueryAll(ctx)
	if err != nil {
		return nil, err
	}
	var teacher user.User
	var found bool
	for _, u := range users {
		if u.IsTeacher() {
			teacher, found = u, true
			break
		}
	}
	if !found {
		return nil, ErrNoTeacher
	}

	candidates, err := p.generator.GenerateCourses(ctx, topic, teacher.ID, teacher.Name)
	if err != nil {
		// generator failures are recovered locally; report zero imported
		p.logger.Error(fmt.Sprintf("generating courses for %q: %v", topic, err), err)
		return []course.Course{}, nil
	}

	imported := make([]course.Course, 0, len(candidates))
	for _, cand := range candidates {
		c, err := p.courseSvc.Create(ctx, course.NewCourse{
			Name:        cand.Name,
			Credits:     cand.Credits,
			TeacherID:   cand.TeacherID,
			Description: cand.Description,
		})
		if err != nil {
			return imported, err
		}
		imported = append(imported, c)
	}
	return imported, nil
}
