package exportsvc

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"

	"github.com/shulehq/shule/core/course"
	"github.com/shulehq/shule/core/grade"
)

func TestGradebookWorkbook(t *testing.T) {
	courses := []course.Course{
		{ID: "101", Name: "高等数学", Credits: 4, TeacherID: "2", TeacherName: "李老师"},
		{ID: "102", Name: "Python程序设计", Credits: 3, TeacherID: "2", TeacherName: "李老师"},
	}
	gradesByCourse := map[string][]grade.Grade{
		"101": {
			{ID: "g1", StudentID: "3", StudentName: "张三", CourseID: "101", CourseName: "高等数学", Score: 85},
			{ID: "g3", StudentID: "4", StudentName: "李四", CourseID: "101", CourseName: "高等数学", Score: 55.5},
		},
	}

	wb, err := NewGradebookWorkbook(courses, gradesByCourse)
	if err != nil {
		t.Fatalf("NewGradebookWorkbook() error = %v", err)
	}
	defer wb.Close()

	data, err := wb.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	assert.ElementsMatch(t, []string{"汇总", "101 高等数学", "102 Python程序设计"}, f.GetSheetList())

	summary, err := f.GetRows("汇总")
	if err != nil {
		t.Fatalf("GetRows(汇总) error = %v", err)
	}
	assert.Equal(t, []string{"课程ID", "课程名称", "授课教师", "学分", "成绩数", "平均分"}, summary[0])
	assert.Equal(t, []string{"101", "高等数学", "李老师", "4", "2", "70.3"}, summary[1])
	assert.Equal(t, []string{"102", "Python程序设计", "李老师", "3", "0", "0"}, summary[2])

	rows, err := f.GetRows("101 高等数学")
	if err != nil {
		t.Fatalf("GetRows(course) error = %v", err)
	}
	assert.Equal(t, []string{"成绩ID", "学号", "姓名", "分数", "是否及格"}, rows[0])
	assert.Equal(t, []string{"g1", "3", "张三", "85", "及格"}, rows[1])
	assert.Equal(t, []string{"g3", "4", "李四", "55.5", "不及格"}, rows[2])

	// a course with no grades still gets its header row
	empty, err := f.GetRows("102 Python程序设计")
	if err != nil {
		t.Fatalf("GetRows(empty course) error = %v", err)
	}
	assert.Len(t, empty, 1)
}

func Test_sheetName_truncates(t *testing.T) {
	c := course.Course{ID: "900", Name: "一门名字特别长长长长长长长长长长长长长长长长长长长长长长长长的课"}
	got := sheetName(c)
	assert.Len(t, []rune(got), 31)
}
