// Package exportsvc renders grade data into an XLSX workbook for the admin
// reporting flow.
package exportsvc

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/shulehq/shule/core/course"
	"github.com/shulehq/shule/core/grade"
)

const summarySheet = "汇总"

var (
	summaryHeader = []string{"课程ID", "课程名称", "授课教师", "学分", "成绩数", "平均分"}
	courseHeader  = []string{"成绩ID", "学号", "姓名", "分数", "是否及格"}
)

// GradebookWorkbook is an XLSX report: one summary sheet plus one sheet per
// course holding its grade rows.
type GradebookWorkbook struct {
	file *excelize.File
}

func NewGradebookWorkbook(courses []course.Course, gradesByCourse map[string][]grade.Grade) (*GradebookWorkbook, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	bold, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})

	summaryRows := make([][]string, 0, len(courses))
	for _, c := range courses {
		grades := gradesByCourse[c.ID]
		summaryRows = append(summaryRows, []string{
			c.ID, c.Name, c.TeacherName,
			strconv.Itoa(c.Credits),
			strconv.Itoa(len(grades)),
			formatScore(grade.Average(grades)),
		})

		name := sheetName(c)
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("new sheet %s: %w", name, err)
		}
		rows := make([][]string, 0, len(grades))
		for _, g := range grades {
			passed := "及格"
			if !g.Passed() {
				passed = "不及格"
			}
			rows = append(rows, []string{g.ID, g.StudentID, g.StudentName, formatScore(g.Score), passed})
		}
		if err := fillSheet(f, name, courseHeader, rows, bold); err != nil {
			return nil, err
		}
	}

	if err := fillSheet(f, summarySheet, summaryHeader, summaryRows, bold); err != nil {
		return nil, err
	}
	return &GradebookWorkbook{file: f}, nil
}

// Bytes serializes the workbook.
func (wb *GradebookWorkbook) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := wb.file.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (wb *GradebookWorkbook) Close() error { return wb.file.Close() }

func fillSheet(f *excelize.File, name string, header []string, rows [][]string, headerStyle int) error {
	for col, h := range header {
		cell := colName(col+1) + "1"
		if err := f.SetCellStr(name, cell, h); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	end := colName(len(header)) + "1"
	_ = f.SetCellStyle(name, "A1", end, headerStyle)
	_ = f.AutoFilter(name, "A1:"+end, nil)

	for r, row := range rows {
		for c, val := range row {
			cell := fmt.Sprintf("%s%d", colName(c+1), r+2)
			if err := f.SetCellStr(name, cell, val); err != nil {
				return fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	// width heuristic: header length vs the first rows
	for c := 1; c <= len(header); c++ {
		max := len(header[c-1])
		for r := 0; r < len(rows) && r < 50; r++ {
			if l := len(rows[r][c-1]); l > max {
				max = l
			}
		}
		w := float64(max) * 0.9
		if w < 12 {
			w = 12
		}
		if w > 40 {
			w = 40
		}
		_ = f.SetColWidth(name, colName(c), colName(c), w)
	}
	return nil
}

// sheetName keeps course sheet names unique and within the 31-char limit.
func sheetName(c course.Course) string {
	name := c.ID + " " + c.Name
	if len([]rune(name)) > 31 {
		name = string([]rune(name)[:31])
	}
	return name
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}

func colName(n int) string {
	name, _ := excelize.ColumnNumberToName(n)
	return name
}
