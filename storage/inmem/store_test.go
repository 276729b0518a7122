package inmemdb

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/shulehq/shule/core/course"
	"github.com/shulehq/shule/core/grade"
	"github.com/shulehq/shule/core/user"
)

func seededStore(opts ...Option) *Store {
	db := NewStore(opts...)
	db.Seed()
	return db
}

func sequentialIDs(prefix string) func() string {
	var n int
	return func() string {
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	}
}

func gradeIDs(grades []grade.Grade) []string {
	ids := make([]string, 0, len(grades))
	for _, g := range grades {
		ids = append(ids, g.ID)
	}
	return ids
}

func Test_userRepository_GetUserByUsername(t *testing.T) {
	repo := NewUserRepository(seededStore())
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		wantID   string
		wantErr  error
	}{
		{name: "exact match", username: "admin", wantID: "1"},
		{name: "student", username: "student2", wantID: "4"},
		{name: "case sensitive", username: "Admin", wantErr: user.ErrNotFound},
		{name: "no partial match", username: "studen", wantErr: user.ErrNotFound},
		{name: "unknown", username: "nobody", wantErr: user.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usr, err := repo.GetUserByUsername(ctx, tt.username)
			if err != tt.wantErr {
				t.Fatalf("GetUserByUsername() error = %v, wantErr %v", err, tt.wantErr)
			}
			if usr.ID != tt.wantID {
				t.Errorf("GetUserByUsername() ID = %s, want %s", usr.ID, tt.wantID)
			}
		})
	}
}

func Test_userRepository_CreateUser(t *testing.T) {
	db := seededStore(WithIDFunc(sequentialIDs("u")))
	repo := NewUserRepository(db)
	ctx := context.Background()

	usr, err := repo.CreateUser(ctx, user.User{Name: "王五", Username: "student3", Role: user.RoleStudent})
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	assert.Equal(t, "u1", usr.ID)

	all, err := repo.QueryAllUsers(ctx)
	if err != nil {
		t.Fatalf("QueryAllUsers() error = %v", err)
	}
	assert.Len(t, all, 5)
	assert.Equal(t, "student3", all[4].Username)

	if err := repo.CheckUsernameUniqueness(ctx, "student3"); err != user.ErrUsernameExists {
		t.Errorf("CheckUsernameUniqueness() error = %v, want %v", err, user.ErrUsernameExists)
	}
	if err := repo.CheckUsernameUniqueness(ctx, "student3", usr); err != nil {
		t.Errorf("CheckUsernameUniqueness() with exclusion error = %v", err)
	}
}

func Test_userRepository_UpdateUser(t *testing.T) {
	repo := NewUserRepository(seededStore())
	ctx := context.Background()

	now := time.Now().UTC()
	usr, err := repo.UpdateUser(ctx, user.User{ID: "3", Major: "软件工程", UpdatedAt: now})
	if err != nil {
		t.Fatalf("UpdateUser() error = %v", err)
	}
	// unset fields keep their stored values
	assert.Equal(t, "张三", usr.Name)
	assert.Equal(t, "软件工程", usr.Major)
	assert.Equal(t, "2021级", usr.ClassYear)
	assert.Equal(t, now, usr.UpdatedAt)

	if _, err = repo.UpdateUser(ctx, user.User{ID: "999", Name: "x"}); err != user.ErrNotFound {
		t.Errorf("UpdateUser() error = %v, want %v", err, user.ErrNotFound)
	}
}

func Test_userRepository_DeleteUser_cascadesGrades(t *testing.T) {
	db := seededStore()
	usrRepo := NewUserRepository(db)
	gradeRepo := NewGradeRepository(db)
	ctx := context.Background()

	if err := usrRepo.DeleteUser(ctx, "3"); err != nil {
		t.Fatalf("DeleteUser() error = %v", err)
	}
	if _, err := usrRepo.GetUserByID(ctx, "3"); err != user.ErrNotFound {
		t.Errorf("GetUserByID() error = %v, want %v", err, user.ErrNotFound)
	}

	// exactly 张三's grades are gone; 李四's records are untouched
	deleted, err := gradeRepo.QueryStudentGrades(ctx, "3")
	assert.Empty(t, mustGrades(t, deleted, err))
	kept, err := gradeRepo.QueryStudentGrades(ctx, "4")
	remaining := mustGrades(t, kept, err)
	assert.Equal(t, []string{"g3", "g4", "g7", "g8"}, gradeIDs(remaining))

	if err := usrRepo.DeleteUser(ctx, "3"); err != user.ErrNotFound {
		t.Errorf("DeleteUser() again error = %v, want %v", err, user.ErrNotFound)
	}
}

func Test_userRepository_DeleteUser_leavesCoursesDangling(t *testing.T) {
	db := seededStore()
	usrRepo := NewUserRepository(db)
	courseRepo := NewCourseRepository(db)
	ctx := context.Background()

	if err := usrRepo.DeleteUser(ctx, "2"); err != nil {
		t.Fatalf("DeleteUser() error = %v", err)
	}

	// courses survive their teacher and keep the write-time name copy
	courses, err := courseRepo.QueryAllCourses(ctx)
	if err != nil {
		t.Fatalf("QueryAllCourses() error = %v", err)
	}
	assert.Len(t, courses, 5)
	for _, c := range courses {
		assert.Equal(t, "李老师", c.TeacherName)
	}
}

func Test_courseRepository_CreateCourse(t *testing.T) {
	db := seededStore(WithIDFunc(sequentialIDs("c")))
	repo := NewCourseRepository(db)
	ctx := context.Background()

	c, err := repo.CreateCourse(ctx, course.NewCourse{Name: "数据库原理", Credits: 3, TeacherID: "2"})
	if err != nil {
		t.Fatalf("CreateCourse() error = %v", err)
	}
	assert.Equal(t, "c1", c.ID)
	assert.Equal(t, "李老师", c.TeacherName)

	if _, err = repo.CreateCourse(ctx, course.NewCourse{Name: "x", Credits: 1, TeacherID: "999"}); err != course.ErrTeacherNotFound {
		t.Errorf("CreateCourse() error = %v, want %v", err, course.ErrTeacherNotFound)
	}
}

func Test_courseRepository_queries(t *testing.T) {
	repo := NewCourseRepository(seededStore())
	ctx := context.Background()

	courses, err := repo.QueryTeacherCourses(ctx, "2")
	if err != nil {
		t.Fatalf("QueryTeacherCourses() error = %v", err)
	}
	ids := make([]string, 0, len(courses))
	for _, c := range courses {
		ids = append(ids, c.ID)
	}
	// insertion order is preserved
	assert.Equal(t, []string{"101", "102", "103", "104", "105"}, ids)

	empty, err := repo.QueryTeacherCourses(ctx, "999")
	if err != nil {
		t.Fatalf("QueryTeacherCourses() error = %v", err)
	}
	assert.Empty(t, empty)

	if _, err = repo.GetCourseByID(ctx, "999"); err != course.ErrNotFound {
		t.Errorf("GetCourseByID() error = %v, want %v", err, course.ErrNotFound)
	}
}

func Test_courseRepository_DeleteCourse_cascadesGrades(t *testing.T) {
	db := seededStore()
	courseRepo := NewCourseRepository(db)
	gradeRepo := NewGradeRepository(db)
	ctx := context.Background()

	if err := courseRepo.DeleteCourse(ctx, "101"); err != nil {
		t.Fatalf("DeleteCourse() error = %v", err)
	}

	// g1 and g3 reference 高等数学; everything else stays
	courseGrades, err := gradeRepo.QueryCourseGrades(ctx, "101")
	assert.Empty(t, mustGrades(t, courseGrades, err))
	zhangGrades, err := gradeRepo.QueryStudentGrades(ctx, "3")
	assert.Equal(t, []string{"g2", "g5", "g6"}, gradeIDs(mustGrades(t, zhangGrades, err)))
	liGrades, err := gradeRepo.QueryStudentGrades(ctx, "4")
	assert.Equal(t, []string{"g4", "g7", "g8"}, gradeIDs(mustGrades(t, liGrades, err)))

	if err := courseRepo.DeleteCourse(ctx, "101"); err != course.ErrNotFound {
		t.Errorf("DeleteCourse() again error = %v, want %v", err, course.ErrNotFound)
	}
}

func Test_gradeRepository_CreateGrade(t *testing.T) {
	db := seededStore(WithIDFunc(sequentialIDs("gx")))
	repo := NewGradeRepository(db)
	ctx := context.Background()

	tests := []struct {
		name    string
		ng      grade.NewGrade
		wantErr error
	}{
		{name: "unknown student", ng: grade.NewGrade{StudentID: "999", CourseID: "101", Score: 50}, wantErr: user.ErrNotFound},
		{name: "unknown course", ng: grade.NewGrade{StudentID: "3", CourseID: "999", Score: 50}, wantErr: course.ErrNotFound},
		{name: "ok", ng: grade.NewGrade{StudentID: "3", CourseID: "103", Score: 91}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := repo.CreateGrade(ctx, tt.ng)
			if err != tt.wantErr {
				t.Fatalf("CreateGrade() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			// names are captured from the live referents
			assert.Equal(t, "gx1", g.ID)
			assert.Equal(t, "张三", g.StudentName)
			assert.Equal(t, "数据结构", g.CourseName)
		})
	}
}

func Test_gradeRepository_queries(t *testing.T) {
	repo := NewGradeRepository(seededStore())
	ctx := context.Background()

	grades, err := repo.QueryStudentGrades(ctx, "3")
	if err != nil {
		t.Fatalf("QueryStudentGrades() error = %v", err)
	}
	assert.Equal(t, []string{"g1", "g2", "g5", "g6"}, gradeIDs(grades))
	assert.Equal(t, 90.3, grade.Average(grades))

	byCourse, err := repo.QueryCourseGrades(ctx, "101")
	if err != nil {
		t.Fatalf("QueryCourseGrades() error = %v", err)
	}
	assert.Equal(t, []string{"g1", "g3"}, gradeIDs(byCourse))

	if _, err = repo.GetGradeByID(ctx, "nope"); err != grade.ErrNotFound {
		t.Errorf("GetGradeByID() error = %v, want %v", err, grade.ErrNotFound)
	}
}

func Test_gradeRepository_UpdateGradeScore(t *testing.T) {
	repo := NewGradeRepository(seededStore())
	ctx := context.Background()

	g, err := repo.UpdateGradeScore(ctx, "g1", 90)
	if err != nil {
		t.Fatalf("UpdateGradeScore() error = %v", err)
	}
	assert.Equal(t, 90.0, g.Score)

	// only the target record changes
	other, err := repo.GetGradeByID(ctx, "g3")
	if err != nil {
		t.Fatalf("GetGradeByID() error = %v", err)
	}
	assert.Equal(t, 78.0, other.Score)

	if _, err = repo.UpdateGradeScore(ctx, "nope", 10); err != grade.ErrNotFound {
		t.Errorf("UpdateGradeScore() error = %v, want %v", err, grade.ErrNotFound)
	}
}

func Test_Store_resolvesNamesAtRead(t *testing.T) {
	db := seededStore()
	usrRepo := NewUserRepository(db)
	courseRepo := NewCourseRepository(db)
	gradeRepo := NewGradeRepository(db)
	ctx := context.Background()

	if _, err := usrRepo.UpdateUser(ctx, user.User{ID: "3", Name: "张三丰"}); err != nil {
		t.Fatalf("UpdateUser() error = %v", err)
	}
	if _, err := usrRepo.UpdateUser(ctx, user.User{ID: "2", Name: "王老师"}); err != nil {
		t.Fatalf("UpdateUser() error = %v", err)
	}

	g, err := gradeRepo.GetGradeByID(ctx, "g1")
	if err != nil {
		t.Fatalf("GetGradeByID() error = %v", err)
	}
	assert.Equal(t, "张三丰", g.StudentName)

	c, err := courseRepo.GetCourseByID(ctx, "101")
	if err != nil {
		t.Fatalf("GetCourseByID() error = %v", err)
	}
	assert.Equal(t, "王老师", c.TeacherName)
}

func Test_Store_queriesReturnCopies(t *testing.T) {
	db := seededStore()
	repo := NewUserRepository(db)
	ctx := context.Background()

	users, err := repo.QueryAllUsers(ctx)
	if err != nil {
		t.Fatalf("QueryAllUsers() error = %v", err)
	}
	users[0].Name = "mutated"

	refreshed, err := repo.GetUserByID(ctx, users[0].ID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	assert.Equal(t, "管理员", refreshed.Name)
}

func Test_Store_latency(t *testing.T) {
	db := seededStore(WithLatency(5 * time.Millisecond))
	repo := NewUserRepository(db)

	start := time.Now()
	if _, err := repo.QueryAllUsers(context.Background()); err != nil {
		t.Fatalf("QueryAllUsers() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed < 5*time.Millisecond {
		t.Errorf("QueryAllUsers() returned after %v, want at least 5ms", elapsed)
	}

	// a canceled context aborts before the mutation is applied
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := repo.DeleteUser(ctx, "3"); err != context.Canceled {
		t.Fatalf("DeleteUser() error = %v, want %v", err, context.Canceled)
	}
	if _, err := repo.GetUserByID(context.Background(), "3"); err != nil {
		t.Errorf("GetUserByID() error = %v; canceled delete must not apply", err)
	}
}

func mustGrades(t *testing.T, grades []grade.Grade, err error) []grade.Grade {
	t.Helper()
	if err != nil {
		t.Fatalf("grade query failed, %v", err)
	}
	return grades
}
