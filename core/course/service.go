package course

import (
	"context"
	"errors"
)

var (
	// errors
	ErrNotFound        = errors.New("course not found")
	ErrTeacherNotFound = errors.New("owning teacher not found")
)

type (
	Repository interface {
		// CreateCourse assigns a fresh ID and appends. It fails with
		// ErrTeacherNotFound if the owning teacher does not exist.
		CreateCourse(ctx context.Context, nc NewCourse) (Course, error)
		QueryAllCourses(ctx context.Context) ([]Course, error)
		QueryTeacherCourses(ctx context.Context, teacherID string) ([]Course, error)
		GetCourseByID(ctx context.Context, id string) (Course, error)
		// DeleteCourse removes the course and cascades removal of all
		// grades referencing it.
		DeleteCourse(ctx context.Context, id string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nc NewCourse) (Course, error) {
	return svc.repo.CreateCourse(ctx, nc)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Course, error) {
	return svc.repo.QueryAllCourses(ctx)
}

func (svc *Service) QueryByTeacher(ctx context.Context, teacherID string) ([]Course, error) {
	return svc.repo.QueryTeacherCourses(ctx, teacherID)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Course, error) {
	return svc.repo.GetCourseByID(ctx, id)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteCourse(ctx, id)
}
