// Package coursegensvc provides core.CourseGenerator implementations: a
// deterministic static fallback and a Gemini-backed generator. Which one runs
// is a wiring decision in main, keyed on whether a credential is configured.
package coursegensvc

import (
	"context"

	"github.com/shulehq/shule/core"
)

const fallbackDescription = "API Key未配置，使用模拟数据"

type staticGenerator struct{}

var _ core.CourseGenerator = (*staticGenerator)(nil)

// NewStaticGenerator returns the no-credential fallback: exactly two fixed
// placeholder records attributed to the given teacher. It never fails.
func NewStaticGenerator() core.CourseGenerator { return &staticGenerator{} }

func (staticGenerator) GenerateCourses(_ context.Context, _, teacherID, teacherName string) ([]core.CandidateCourse, error) {
	return []core.CandidateCourse{
		{Name: "模拟课程1", Credits: 2, Description: fallbackDescription, TeacherID: teacherID, TeacherName: teacherName},
		{Name: "模拟课程2", Credits: 3, Description: fallbackDescription, TeacherID: teacherID, TeacherName: teacherName},
	}, nil
}
