package coursegensvc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shulehq/shule/core"
)

func TestStaticGenerator(t *testing.T) {
	gen := NewStaticGenerator()

	candidates, err := gen.GenerateCourses(context.Background(), "人工智能", "2", "李老师")
	if err != nil {
		t.Fatalf("GenerateCourses() error = %v", err)
	}

	want := []core.CandidateCourse{
		{Name: "模拟课程1", Credits: 2, Description: "API Key未配置，使用模拟数据", TeacherID: "2", TeacherName: "李老师"},
		{Name: "模拟课程2", Credits: 3, Description: "API Key未配置，使用模拟数据", TeacherID: "2", TeacherName: "李老师"},
	}
	assert.Equal(t, want, candidates)

	// topic never changes the fallback output
	again, err := gen.GenerateCourses(context.Background(), "量子计算", "2", "李老师")
	if err != nil {
		t.Fatalf("GenerateCourses() error = %v", err)
	}
	assert.Equal(t, candidates, again)
}
