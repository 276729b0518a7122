package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	echoapi "github.com/shulehq/shule/apps/api/echo"
	"github.com/shulehq/shule/core/course"
	"github.com/shulehq/shule/core/grade"
	"github.com/shulehq/shule/core/user"
)

// otherTeacher creates a second teacher who owns no course.
func otherTeacher(t *testing.T) user.User {
	t.Helper()
	usr, err := usrSvc.Create(context.Background(), user.NewUser{Name: "王老师", Username: "teacher2", Role: user.RoleTeacher})
	if err != nil {
		t.Fatalf("otherTeacher(): %v", err)
	}
	return usr
}

func Test_teacherApi_courses(t *testing.T) {
	resetStore(t)

	teacher := getUser(t, "2")
	ownCourses := []course.Course{
		{ID: "101", Name: "高等数学", Credits: 4, TeacherID: "2", TeacherName: "李老师", Description: "理工科基础必修课"},
		{ID: "102", Name: "Python程序设计", Credits: 3, TeacherID: "2", TeacherName: "李老师", Description: "编程入门与实践"},
		{ID: "103", Name: "数据结构", Credits: 4, TeacherID: "2", TeacherName: "李老师", Description: "核心算法与存储结构"},
		{ID: "104", Name: "计算机网络", Credits: 3, TeacherID: "2", TeacherName: "李老师", Description: "网络协议与体系结构"},
		{ID: "105", Name: "操作系统", Credits: 4, TeacherID: "2", TeacherName: "李老师", Description: "进程管理与内存调度"},
	}

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "Teacher required", token: getToken(t, getUser(t, "3")), wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)},
		{name: "Own courses", token: getToken(t, teacher), wantCode: http.StatusOK, wantData: marchallObj(t, ownCourses)},
		{name: "No courses", token: getToken(t, otherTeacher(t)), wantCode: http.StatusOK, wantData: marchallObj(t, []course.Course{})},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet
		tt.path = "/v1/teacher/courses"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_teacherApi_courseGrades(t *testing.T) {
	resetStore(t)

	teacherToken := getToken(t, getUser(t, "2"))
	otherToken := getToken(t, otherTeacher(t))

	wantResp := echoapi.CourseGradesResponse{
		Grades: []grade.Grade{
			{ID: "g1", StudentID: "3", StudentName: "张三", CourseID: "101", CourseName: "高等数学", Score: 85},
			{ID: "g3", StudentID: "4", StudentName: "李四", CourseID: "101", CourseName: "高等数学", Score: 78},
		},
		Average: 81.5,
	}

	tests := []httpTest{
		{name: "Auth required", path: "/v1/teacher/courses/101/grades", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "Teacher required", path: "/v1/teacher/courses/101/grades", token: getToken(t, getUser(t, "3")), wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)},
		{
			name: "Unknown course", path: "/v1/teacher/courses/999/grades", token: teacherToken,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "course not found"}),
		},
		{
			name: "Not course owner", path: "/v1/teacher/courses/101/grades", token: otherToken,
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "course is not owned by this teacher"}),
		},
		{name: "Course grades with average", path: "/v1/teacher/courses/101/grades", token: teacherToken, wantCode: http.StatusOK, wantData: marchallObj(t, wantResp)},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_teacherApi_addGrade(t *testing.T) {
	resetStore(t)

	teacherToken := getToken(t, getUser(t, "2"))
	otherToken := getToken(t, otherTeacher(t))

	type extraTest struct {
		wantStudentName string
		wantCourseName  string
		wantScore       float64
	}
	tests := []httpTest{
		{name: "Auth required", path: "/v1/teacher/courses/103/grades", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "required fields", path: "/v1/teacher/courses/103/grades", token: teacherToken,
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"student_id": "this field is required"}),
		},
		{
			name: "score above 100", path: "/v1/teacher/courses/103/grades", token: teacherToken,
			body:     marchallObj(t, echoapi.AddGradeRequest{StudentID: "3", Score: 101}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"score": "score must be 100 or less"}),
		},
		{
			name: "unknown student", path: "/v1/teacher/courses/103/grades", token: teacherToken,
			body:     marchallObj(t, echoapi.AddGradeRequest{StudentID: "999", Score: 50}),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "user not found"}),
		},
		{
			name: "unknown course", path: "/v1/teacher/courses/999/grades", token: teacherToken,
			body:     marchallObj(t, echoapi.AddGradeRequest{StudentID: "3", Score: 50}),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "course not found"}),
		},
		{
			name: "not course owner", path: "/v1/teacher/courses/103/grades", token: otherToken,
			body:     marchallObj(t, echoapi.AddGradeRequest{StudentID: "3", Score: 50}),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "course is not owned by this teacher"}),
		},
		{
			name: "grade added", path: "/v1/teacher/courses/103/grades", token: teacherToken,
			body:     marchallObj(t, echoapi.AddGradeRequest{StudentID: "3", Score: 91}),
			wantCode: http.StatusCreated, extra: extraTest{wantStudentName: "张三", wantCourseName: "数据结构", wantScore: 91},
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)

			if extra, ok := tt.extra.(extraTest); ok {
				if rec.Code != tt.wantCode {
					t.Fatalf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
				}
				var respData grade.Grade
				if err := json.Unmarshal(rec.Body.Bytes(), &respData); err != nil {
					t.Fatalf("json.Unmarshal(): %v", err)
				}
				if respData.ID == "" {
					t.Error("failed! empty grade ID")
				}
				if respData.StudentName != extra.wantStudentName {
					t.Errorf("failed! student_name = %v; want %v", respData.StudentName, extra.wantStudentName)
				}
				if respData.CourseName != extra.wantCourseName {
					t.Errorf("failed! course_name = %v; want %v", respData.CourseName, extra.wantCourseName)
				}
				if respData.Score != extra.wantScore {
					t.Errorf("failed! score = %v; want %v", respData.Score, extra.wantScore)
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_teacherApi_updateGrade(t *testing.T) {
	resetStore(t)

	teacherToken := getToken(t, getUser(t, "2"))
	otherToken := getToken(t, otherTeacher(t))

	updatedGrade := grade.Grade{ID: "g1", StudentID: "3", StudentName: "张三", CourseID: "101", CourseName: "高等数学", Score: 90}
	untouchedGrade := grade.Grade{ID: "g3", StudentID: "4", StudentName: "李四", CourseID: "101", CourseName: "高等数学", Score: 78}

	tests := []httpTest{
		{name: "Auth required", path: "/v1/teacher/grades/g1", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Unknown grade", path: "/v1/teacher/grades/nope", token: teacherToken, body: marchallObj(t, echoapi.UpdateGradeRequest{Score: 90}),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "grade not found"}),
		},
		{
			name: "Not course owner", path: "/v1/teacher/grades/g1", token: otherToken, body: marchallObj(t, echoapi.UpdateGradeRequest{Score: 90}),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "course is not owned by this teacher"}),
		},
		{
			name: "Score updated", path: "/v1/teacher/grades/g1", token: teacherToken, body: marchallObj(t, echoapi.UpdateGradeRequest{Score: 90}),
			wantCode: http.StatusOK, wantData: marchallObj(t, updatedGrade),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPut

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	// sibling record is untouched
	g, err := gradeSvc.GetByID(context.Background(), "g3")
	if err != nil {
		t.Fatalf("GetByID(g3): %v", err)
	}
	if g != untouchedGrade {
		t.Errorf("failed! grade = %+v; want %+v", g, untouchedGrade)
	}
}
