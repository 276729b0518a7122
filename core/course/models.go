package course

import (
	"github.com/go-playground/validator/v10"

	"github.com/shulehq/shule/core"
)

type Course struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Credits     int    `json:"credits"`
	TeacherID   string `json:"teacher_id"`
	TeacherName string `json:"teacher_name"`
	Description string `json:"description,omitempty"`
}

// NewCourse contains information needed to create a new Course. The owning
// teacher must exist at creation time.
type NewCourse struct {
	Name        string `json:"name" validate:"required"`
	Credits     int    `json:"credits" validate:"required,gt=0"`
	TeacherID   string `json:"teacher_id" validate:"required"`
	Description string `json:"description"`
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.Name = core.CleanString(nc.Name)
	nc.Description = core.CleanString(nc.Description)
	return validate.Struct(nc)
}
