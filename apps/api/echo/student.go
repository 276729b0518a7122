package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/shulehq/shule/core/grade"
	"github.com/shulehq/shule/core/portal"
	"github.com/shulehq/shule/core/user"
)

type studentApi struct {
	deps ServerDeps
}

func registerStudentAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := studentApi{deps: deps}

	sg := g.Group("/student", jwt, studentMiddleware())
	sg.GET("/grades", api.grades)
	sg.GET("/summary", api.summary)
	sg.PUT("/profile", api.updateProfile)
}

// portal builds the acting student's portal from the request token.
func (api *studentApi) portal(ctx echo.Context) (*portal.StudentPortal, error) {
	usr, err := getContextUser(ctx, api.deps.UserSvc)
	if err != nil {
		return nil, errors.Wrap(err, "getting context user")
	}
	return portal.NewStudentPortal(usr, api.deps.UserSvc, api.deps.GradeSvc)
}

// Handlers

func (api *studentApi) grades(ctx echo.Context) error {
	p, err := api.portal(ctx)
	if err != nil {
		return err
	}
	grades, err := p.Grades(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying student grades")
	}
	if grades == nil {
		grades = []grade.Grade{}
	}
	return ctx.JSON(http.StatusOK, grades)
}

func (api *studentApi) summary(ctx echo.Context) error {
	p, err := api.portal(ctx)
	if err != nil {
		return err
	}
	sum, err := p.Summary(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "deriving student summary")
	}
	return ctx.JSON(http.StatusOK, sum)
}

func (api *studentApi) updateProfile(ctx echo.Context) error {
	p, err := api.portal(ctx)
	if err != nil {
		return err
	}

	var data user.Profile
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Profile")
	}

	usr, err := p.UpdateProfile(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "updating student profile")
	}
	return ctx.JSON(http.StatusOK, usr)
}
