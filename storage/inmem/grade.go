package inmemdb

import (
	"context"

	"github.com/shulehq/shule/core/course"
	"github.com/shulehq/shule/core/grade"
	"github.com/shulehq/shule/core/user"
	"github.com/shulehq/shule/services/metrics"
)

type gradeRepository struct {
	db *Store
}

func NewGradeRepository(db *Store) grade.Repository {
	return &gradeRepository{db: db}
}

func (repo *gradeRepository) CreateGrade(ctx context.Context, ng grade.NewGrade) (grade.Grade, error) {
	if err := repo.db.delay(ctx); err != nil {
		return grade.Grade{}, err
	}
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	metrics.StoreOps.WithLabelValues("create_grade").Inc()

	student, ok := repo.db.findUser(ng.StudentID)
	if !ok {
		return grade.Grade{}, user.ErrNotFound
	}
	c, ok := repo.db.findCourse(ng.CourseID)
	if !ok {
		return grade.Grade{}, course.ErrNotFound
	}
	g := grade.Grade{
		ID:          repo.db.newID(),
		StudentID:   student.ID,
		StudentName: student.Name,
		CourseID:    c.ID,
		CourseName:  c.Name,
		Score:       ng.Score,
	}
	repo.db.grades = append(repo.db.grades, g)
	return g, nil
}

func (repo *gradeRepository) QueryStudentGrades(ctx context.Context, studentID string) ([]grade.Grade, error) {
	if err := repo.db.delay(ctx); err != nil {
		return nil, err
	}
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	metrics.StoreOps.WithLabelValues("query_student_grades").Inc()

	grades := make([]grade.Grade, 0)
	for _, g := range repo.db.grades {
		if g.StudentID == studentID {
			grades = append(grades, repo.db.resolveGrade(g))
		}
	}
	return grades, nil
}

func (repo *gradeRepository) QueryCourseGrades(ctx context.Context, courseID string) ([]grade.Grade, error) {
	if err := repo.db.delay(ctx); err != nil {
		return nil, err
	}
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	metrics.StoreOps.WithLabelValues("query_course_grades").Inc()

	grades := make([]grade.Grade, 0)
	for _, g := range repo.db.grades {
		if g.CourseID == courseID {
			grades = append(grades, repo.db.resolveGrade(g))
		}
	}
	return grades, nil
}

func (repo *gradeRepository) GetGradeByID(ctx context.Context, id string) (grade.Grade, error) {
	if err := repo.db.delay(ctx); err != nil {
		return grade.Grade{}, err
	}
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, g := range repo.db.grades {
		if g.ID == id {
			return repo.db.resolveGrade(g), nil
		}
	}
	return grade.Grade{}, grade.ErrNotFound
}

func (repo *gradeRepository) UpdateGradeScore(ctx context.Context, id string, score float64) (grade.Grade, error) {
	if err := repo.db.delay(ctx); err != nil {
		return grade.Grade{}, err
	}
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	metrics.StoreOps.WithLabelValues("update_grade_score").Inc()

	for i := range repo.db.grades {
		if repo.db.grades[i].ID == id {
			repo.db.grades[i].Score = score
			return repo.db.resolveGrade(repo.db.grades[i]), nil
		}
	}
	return grade.Grade{}, grade.ErrNotFound
}
