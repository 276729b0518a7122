package echoapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/shulehq/shule/core"
	"github.com/shulehq/shule/core/course"
	"github.com/shulehq/shule/core/grade"
	"github.com/shulehq/shule/core/portal"
	"github.com/shulehq/shule/core/user"
	exportsvc "github.com/shulehq/shule/services/export"
)

type adminApi struct {
	deps ServerDeps
}

func registerAdminAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := adminApi{deps: deps}

	ag := g.Group("/admin", jwt, adminMiddleware())
	ag.GET("/users", api.users)
	ag.POST("/users", api.addUser)
	ag.DELETE("/users/:id", api.deleteUser)
	ag.GET("/roles", api.roles)
	ag.GET("/courses", api.courses)
	ag.POST("/courses", api.addCourse)
	ag.DELETE("/courses/:id", api.deleteCourse)
	ag.POST("/courses/import", api.importCourses)
	ag.GET("/grades/export", api.exportGrades)
}

func (api *adminApi) portal(ctx echo.Context) (*portal.AdminPortal, error) {
	usr, err := getContextUser(ctx, api.deps.UserSvc)
	if err != nil {
		return nil, errors.Wrap(err, "getting context user")
	}
	return portal.NewAdminPortal(usr, api.deps.UserSvc, api.deps.CourseSvc, api.deps.GradeSvc, api.deps.Generator, api.deps.Logger)
}

// Handlers

func (api *adminApi) users(ctx echo.Context) error {
	p, err := api.portal(ctx)
	if err != nil {
		return err
	}
	users, err := p.Users(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying users")
	}
	if users == nil {
		users = []user.User{}
	}
	return ctx.JSON(http.StatusOK, users)
}

func (api *adminApi) addUser(ctx echo.Context) error {
	p, err := api.portal(ctx)
	if err != nil {
		return err
	}

	var data user.NewUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUser")
	}
	if err := data.Validate(api.deps.Validate, api.deps.UserSvc); err != nil {
		return err
	}

	usr, err := p.AddUser(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating user")
	}
	return ctx.JSON(http.StatusCreated, usr)
}

func (api *adminApi) deleteUser(ctx echo.Context) error {
	p, err := api.portal(ctx)
	if err != nil {
		return err
	}
	if err := p.DeleteUser(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *adminApi) roles(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, user.Roles)
}

func (api *adminApi) courses(ctx echo.Context) error {
	p, err := api.portal(ctx)
	if err != nil {
		return err
	}
	courses, err := p.Courses(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	if courses == nil {
		courses = []course.Course{}
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *adminApi) addCourse(ctx echo.Context) error {
	p, err := api.portal(ctx)
	if err != nil {
		return err
	}

	var data course.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	c, err := p.AddCourse(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, c)
}

func (api *adminApi) deleteCourse(ctx echo.Context) error {
	p, err := api.portal(ctx)
	if err != nil {
		return err
	}
	if err := p.DeleteCourse(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *adminApi) importCourses(ctx echo.Context) error {
	p, err := api.portal(ctx)
	if err != nil {
		return err
	}

	var data ImportCoursesRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ImportCoursesRequest")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	imported, err := p.ImportCourses(ctx.Request().Context(), data.Topic)
	if err != nil {
		return err
	}
	// zero imported is a reportable outcome, not a failure
	return ctx.JSON(http.StatusOK, ImportCoursesResponse{
		Topic:    data.Topic,
		Imported: len(imported),
		Courses:  imported,
	})
}

func (api *adminApi) exportGrades(ctx echo.Context) error {
	p, err := api.portal(ctx)
	if err != nil {
		return err
	}
	reqCtx := ctx.Request().Context()

	courses, err := p.Courses(reqCtx)
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	gradesByCourse := make(map[string][]grade.Grade, len(courses))
	for _, c := range courses {
		grades, err := p.CourseGrades(reqCtx, c.ID)
		if err != nil {
			return errors.Wrap(err, "querying course grades")
		}
		gradesByCourse[c.ID] = grades
	}

	wb, err := exportsvc.NewGradebookWorkbook(courses, gradesByCourse)
	if err != nil {
		return errors.Wrap(err, "building gradebook workbook")
	}
	defer wb.Close()

	data, err := wb.Bytes()
	if err != nil {
		return errors.Wrap(err, "serializing gradebook workbook")
	}

	filename := fmt.Sprintf("gradebook-%s.xlsx", time.Now().Format("20060102"))
	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return ctx.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

type (
	ImportCoursesRequest struct {
		Topic string `json:"topic" validate:"required"`
	}

	ImportCoursesResponse struct {
		Topic    string          `json:"topic"`
		Imported int             `json:"imported"`
		Courses  []course.Course `json:"courses"`
	}
)

func (ir *ImportCoursesRequest) Validate(validate *validator.Validate) error {
	ir.Topic = core.CleanString(ir.Topic)
	return validate.Struct(ir)
}
