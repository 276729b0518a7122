// Package portal derives per-role views over the domain services. It holds
// no state of its own; each portal is constructed for one acting user and
// only ever exposes the operations that user's role may reach. The API layer
// talks to portals exclusively and never to the store.
package portal

import (
	"context"
	"errors"

	"github.com/shulehq/shule/core/grade"
	"github.com/shulehq/shule/core/user"
)

var ErrRoleMismatch = errors.New("portal does not match the user's role")

type StudentPortal struct {
	self     user.User
	userSvc  *user.Service
	gradeSvc *grade.Service
}

func NewStudentPortal(self user.User, userSvc *user.Service, gradeSvc *grade.Service) (*StudentPortal, error) {
	if !self.IsStudent() {
		return nil, ErrRoleMismatch
	}
	return &StudentPortal{self: self, userSvc: userSvc, gradeSvc: gradeSvc}, nil
}

func (p *StudentPortal) Self() user.User { return p.self }

// Grades returns the acting student's own grades. No other student's grades
// are reachable through this portal.
func (p *StudentPortal) Grades(ctx context.Context) ([]grade.Grade, error) {
	return p.gradeSvc.QueryByStudent(ctx, p.self.ID)
}

type StudentSummary struct {
	Average float64 `json:"average"`
	Courses int     `json:"courses"`
	Passed  int     `json:"passed"`
	Failed  int     `json:"failed"`
}

// Summary derives the dashboard stats: mean score to 0.1, pass/fail counts at
// the fixed pass mark.
func (p *StudentPortal) Summary(ctx context.Context) (StudentSummary, error) {
	grades, err := p.gradeSvc.QueryByStudent(ctx, p.self.ID)
	if err != nil {
		return StudentSummary{}, err
	}
	sum := StudentSummary{Average: grade.Average(grades), Courses: len(grades)}
	for _, g := range grades {
		if g.Passed() {
			sum.Passed++
		} else {
			sum.Failed++
		}
	}
	return sum, nil
}

// UpdateProfile merges the set fields into the acting student's own record.
func (p *StudentPortal) UpdateProfile(ctx context.Context, prof user.Profile) (user.User, error) {
	usr, err := p.userSvc.UpdateProfile(ctx, p.self.ID, prof)
	if err != nil {
		return user.User{}, err
	}
	p.self = usr
	return usr, nil
}
