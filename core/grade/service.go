package grade

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("grade not found")

type (
	Repository interface {
		// CreateGrade looks up both referenced entities, fails with the
		// relevant domain ErrNotFound if either is missing, and otherwise
		// assigns a fresh ID and captures the referenced names.
		CreateGrade(ctx context.Context, ng NewGrade) (Grade, error)
		// QueryStudentGrades preserves store insertion order.
		QueryStudentGrades(ctx context.Context, studentID string) ([]Grade, error)
		QueryCourseGrades(ctx context.Context, courseID string) ([]Grade, error)
		GetGradeByID(ctx context.Context, id string) (Grade, error)
		// UpdateGradeScore replaces the score in place; ErrNotFound if the
		// grade is absent.
		UpdateGradeScore(ctx context.Context, id string, score float64) (Grade, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, ng NewGrade) (Grade, error) {
	return svc.repo.CreateGrade(ctx, ng)
}

func (svc *Service) QueryByStudent(ctx context.Context, studentID string) ([]Grade, error) {
	return svc.repo.QueryStudentGrades(ctx, studentID)
}

func (svc *Service) QueryByCourse(ctx context.Context, courseID string) ([]Grade, error) {
	return svc.repo.QueryCourseGrades(ctx, courseID)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Grade, error) {
	return svc.repo.GetGradeByID(ctx, id)
}

func (svc *Service) UpdateScore(ctx context.Context, id string, score float64) (Grade, error) {
	return svc.repo.UpdateGradeScore(ctx, id, score)
}
