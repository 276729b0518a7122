package user

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/go-playground/validator/v10"

	"github.com/shulehq/shule/core"
)

// Roles. A user holds exactly one role, fixed at creation; no role-change
// operation exists.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

var AllRoles = []string{RoleStudent, RoleTeacher, RoleAdmin}

type Role struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

var Roles = []Role{
	{Name: "Student", Value: RoleStudent},
	{Name: "Teacher", Value: RoleTeacher},
	{Name: "Admin", Value: RoleAdmin},
}

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	Role         string    `json:"role"`
	PasswordHash []byte    `json:"-"`
	Major        string    `json:"major,omitempty"`      // students only
	ClassYear    string    `json:"class_year,omitempty"` // students only
	CreatedAt    time.Time `json:"created_at"`           // UTC
	UpdatedAt    time.Time `json:"updated_at"`           // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) IsAdmin() bool   { return u.Role == RoleAdmin }
func (u *User) IsTeacher() bool { return u.Role == RoleTeacher }
func (u *User) IsStudent() bool { return u.Role == RoleStudent }

// NewUser contains information needed to create a new User.
type NewUser struct {
	Name      string `json:"name" validate:"required"`
	Username  string `json:"username" validate:"required,min=3,alphanum_"`
	Role      string `json:"role" validate:"required,role"`
	Password  string `json:"password" validate:"omitempty"`
	Major     string `json:"major" validate:"omitempty"`
	ClassYear string `json:"class_year" validate:"omitempty"`
}

func (nu *NewUser) Validate(validate *validator.Validate, svc *Service) error {
	nu.Name = core.CleanString(nu.Name)
	nu.Username = core.CleanString(nu.Username)

	if err := validate.Struct(nu); err != nil {
		return err
	}
	return svc.CheckUniqueness(nu.Username)
}

// Profile defines what a student may change on their own record. Zero-valued
// fields are left untouched.
type Profile struct {
	Name      string `json:"name"`
	Major     string `json:"major"`
	ClassYear string `json:"class_year"`
}

func (p *Profile) Clean() {
	p.Name = core.CleanString(p.Name)
	p.Major = core.CleanString(p.Major)
	p.ClassYear = core.CleanString(p.ClassYear)
}
