package grade

import (
	"math"

	"github.com/go-playground/validator/v10"
)

// PassMark is the pass threshold, inclusive.
const PassMark = 60.0

type Grade struct {
	ID          string  `json:"id"`
	StudentID   string  `json:"student_id"`
	StudentName string  `json:"student_name"`
	CourseID    string  `json:"course_id"`
	CourseName  string  `json:"course_name"`
	Score       float64 `json:"score"`
}

func (g Grade) Passed() bool { return g.Score >= PassMark }

// NewGrade contains information needed to record a new Grade. Both referenced
// entities must exist; names are captured from them at write time.
type NewGrade struct {
	StudentID string  `json:"student_id" validate:"required"`
	CourseID  string  `json:"course_id" validate:"required"`
	Score     float64 `json:"score" validate:"gte=0,lte=100"`
}

func (ng *NewGrade) Validate(validate *validator.Validate) error {
	return validate.Struct(ng)
}

// Average returns the mean score rounded to 0.1, or 0 for an empty list.
func Average(grades []Grade) float64 {
	if len(grades) == 0 {
		return 0
	}
	var sum float64
	for _, g := range grades {
		sum += g.Score
	}
	return math.Round(sum/float64(len(grades))*10) / 10
}
