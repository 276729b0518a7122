package inmemdb

import (
	"context"

	"github.com/shulehq/shule/core/course"
	"github.com/shulehq/shule/services/metrics"
)

type courseRepository struct {
	db *Store
}

func NewCourseRepository(db *Store) course.Repository {
	return &courseRepository{db: db}
}

func (repo *courseRepository) CreateCourse(ctx context.Context, nc course.NewCourse) (course.Course, error) {
	if err := repo.db.delay(ctx); err != nil {
		return course.Course{}, err
	}
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	metrics.StoreOps.WithLabelValues("create_course").Inc()

	teacher, ok := repo.db.findUser(nc.TeacherID)
	if !ok {
		return course.Course{}, course.ErrTeacherNotFound
	}
	c := course.Course{
		ID:          repo.db.newID(),
		Name:        nc.Name,
		Credits:     nc.Credits,
		TeacherID:   teacher.ID,
		TeacherName: teacher.Name,
		Description: nc.Description,
	}
	repo.db.courses = append(repo.db.courses, c)
	return c, nil
}

func (repo *courseRepository) QueryAllCourses(ctx context.Context) ([]course.Course, error) {
	if err := repo.db.delay(ctx); err != nil {
		return nil, err
	}
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	metrics.StoreOps.WithLabelValues("query_all_courses").Inc()

	courses := make([]course.Course, 0, len(repo.db.courses))
	for _, c := range repo.db.courses {
		courses = append(courses, repo.db.resolveCourse(c))
	}
	return courses, nil
}

func (repo *courseRepository) QueryTeacherCourses(ctx context.Context, teacherID string) ([]course.Course, error) {
	if err := repo.db.delay(ctx); err != nil {
		return nil, err
	}
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	metrics.StoreOps.WithLabelValues("query_teacher_courses").Inc()

	courses := make([]course.Course, 0)
	for _, c := range repo.db.courses {
		if c.TeacherID == teacherID {
			courses = append(courses, repo.db.resolveCourse(c))
		}
	}
	return courses, nil
}

func (repo *courseRepository) GetCourseByID(ctx context.Context, id string) (course.Course, error) {
	if err := repo.db.delay(ctx); err != nil {
		return course.Course{}, err
	}
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if c, ok := repo.db.findCourse(id); ok {
		return repo.db.resolveCourse(c), nil
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *courseRepository) DeleteCourse(ctx context.Context, id string) error {
	if err := repo.db.delay(ctx); err != nil {
		return err
	}
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	metrics.StoreOps.WithLabelValues("delete_course").Inc()

	courses := repo.db.courses[:0]
	var found bool
	for _, c := range repo.db.courses {
		if c.ID == id {
			found = true
			continue
		}
		courses = append(courses, c)
	}
	if !found {
		return course.ErrNotFound
	}
	repo.db.courses = courses

	// cascade: drop exactly the grades referencing the course
	grades := repo.db.grades[:0]
	for _, g := range repo.db.grades {
		if g.CourseID == id {
			continue
		}
		grades = append(grades, g)
	}
	repo.db.grades = grades
	return nil
}
