package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/shulehq/shule/core/course"
	"github.com/shulehq/shule/core/grade"
	"github.com/shulehq/shule/core/portal"
)

type teacherApi struct {
	deps ServerDeps
}

func registerTeacherAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := teacherApi{deps: deps}

	tg := g.Group("/teacher", jwt, teacherMiddleware())
	tg.GET("/courses", api.courses)
	tg.GET("/courses/:id/grades", api.courseGrades)
	tg.POST("/courses/:id/grades", api.addGrade)
	tg.PUT("/grades/:id", api.updateGrade)
}

func (api *teacherApi) portal(ctx echo.Context) (*portal.TeacherPortal, error) {
	usr, err := getContextUser(ctx, api.deps.UserSvc)
	if err != nil {
		return nil, errors.Wrap(err, "getting context user")
	}
	return portal.NewTeacherPortal(usr, api.deps.CourseSvc, api.deps.GradeSvc)
}

// Handlers

func (api *teacherApi) courses(ctx echo.Context) error {
	p, err := api.portal(ctx)
	if err != nil {
		return err
	}
	courses, err := p.Courses(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying teacher courses")
	}
	if courses == nil {
		courses = []course.Course{}
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *teacherApi) courseGrades(ctx echo.Context) error {
	p, err := api.portal(ctx)
	if err != nil {
		return err
	}
	grades, err := p.CourseGrades(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	if grades == nil {
		grades = []grade.Grade{}
	}
	return ctx.JSON(http.StatusOK, CourseGradesResponse{
		Grades:  grades,
		Average: grade.Average(grades),
	})
}

func (api *teacherApi) addGrade(ctx echo.Context) error {
	p, err := api.portal(ctx)
	if err != nil {
		return err
	}

	var data AddGradeRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AddGradeRequest")
	}
	ng := grade.NewGrade{
		StudentID: data.StudentID,
		CourseID:  ctx.Param("id"),
		Score:     data.Score,
	}
	if err := ng.Validate(api.deps.Validate); err != nil {
		return err
	}

	g, err := p.AddGrade(ctx.Request().Context(), ng)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, g)
}

func (api *teacherApi) updateGrade(ctx echo.Context) error {
	p, err := api.portal(ctx)
	if err != nil {
		return err
	}

	var data UpdateGradeRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateGradeRequest")
	}
	if err := api.deps.Validate.Struct(&data); err != nil {
		return err
	}

	g, err := p.UpdateGrade(ctx.Request().Context(), ctx.Param("id"), data.Score)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, g)
}

type (
	CourseGradesResponse struct {
		Grades  []grade.Grade `json:"grades"`
		Average float64       `json:"average"`
	}

	AddGradeRequest struct {
		StudentID string  `json:"student_id" validate:"required"`
		Score     float64 `json:"score" validate:"gte=0,lte=100"`
	}

	UpdateGradeRequest struct {
		Score float64 `json:"score" validate:"gte=0,lte=100"`
	}
)
