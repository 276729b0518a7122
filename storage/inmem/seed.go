package inmemdb

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/shulehq/shule/core/course"
	"github.com/shulehq/shule/core/grade"
	"github.com/shulehq/shule/core/user"
)

// Seed replaces the collections with the demo fixture set. It runs at every
// process start; there is no persistence to restore from.
func (s *Store) Seed() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := time.Now().UTC()
	s.users = []user.User{
		{ID: "1", Name: "管理员", Username: "admin", Role: user.RoleAdmin, PasswordHash: mustHash("admin"), CreatedAt: now, UpdatedAt: now},
		{ID: "2", Name: "李老师", Username: "teacher", Role: user.RoleTeacher, PasswordHash: mustHash("123456"), CreatedAt: now, UpdatedAt: now},
		{ID: "3", Name: "张三", Username: "student", Role: user.RoleStudent, Major: "计算机科学", ClassYear: "2021级", PasswordHash: mustHash("123456"), CreatedAt: now, UpdatedAt: now},
		{ID: "4", Name: "李四", Username: "student2", Role: user.RoleStudent, Major: "计算机科学", ClassYear: "2021级", PasswordHash: mustHash("123456"), CreatedAt: now, UpdatedAt: now},
	}

	s.courses = []course.Course{
		{ID: "101", Name: "高等数学", Credits: 4, TeacherID: "2", TeacherName: "李老师", Description: "理工科基础必修课"},
		{ID: "102", Name: "Python程序设计", Credits: 3, TeacherID: "2", TeacherName: "李老师", Description: "编程入门与实践"},
		{ID: "103", Name: "数据结构", Credits: 4, TeacherID: "2", TeacherName: "李老师", Description: "核心算法与存储结构"},
		{ID: "104", Name: "计算机网络", Credits: 3, TeacherID: "2", TeacherName: "李老师", Description: "网络协议与体系结构"},
		{ID: "105", Name: "操作系统", Credits: 4, TeacherID: "2", TeacherName: "李老师", Description: "进程管理与内存调度"},
	}

	s.grades = []grade.Grade{
		{ID: "g1", StudentID: "3", StudentName: "张三", CourseID: "101", CourseName: "高等数学", Score: 85},
		{ID: "g2", StudentID: "3", StudentName: "张三", CourseID: "102", CourseName: "Python程序设计", Score: 92},
		{ID: "g3", StudentID: "4", StudentName: "李四", CourseID: "101", CourseName: "高等数学", Score: 78},
		{ID: "g4", StudentID: "4", StudentName: "李四", CourseID: "102", CourseName: "Python程序设计", Score: 88},
		{ID: "g5", StudentID: "3", StudentName: "张三", CourseID: "104", CourseName: "计算机网络", Score: 89},
		{ID: "g6", StudentID: "3", StudentName: "张三", CourseID: "105", CourseName: "操作系统", Score: 95},
		{ID: "g7", StudentID: "4", StudentName: "李四", CourseID: "104", CourseName: "计算机网络", Score: 76},
		{ID: "g8", StudentID: "4", StudentName: "李四", CourseID: "105", CourseName: "操作系统", Score: 82},
	}
}

// mustHash hashes demo passwords. MinCost keeps reseeding cheap; these are
// fixtures, not credentials.
func mustHash(pwd string) []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return hash
}
