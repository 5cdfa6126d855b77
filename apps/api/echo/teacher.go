package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/classportal/backend/core/dashboard"
	"github.com/classportal/backend/core/grade"
	"github.com/classportal/backend/core/project"
)

type teacherApi struct {
	svc *dashboard.Service
}

type (
	setLeaderReq struct {
		Name   string `json:"name"`
		Leader string `json:"leader"` // blank clears the leader
	}

	deadlineReq struct {
		Deadline string `json:"deadline"`
	}
)

func registerTeacherAPI(g *echo.Group, auth *authenticator, svc *dashboard.Service) {
	api := teacherApi{svc: svc}

	tg := g.Group("/teacher", append(auth.required(), teacherMiddleware)...)
	tg.GET("/dashboard", api.dashboard)
	tg.POST("/groups", api.createGroup)
	tg.DELETE("/groups", api.deleteGroup)
	tg.PUT("/groups/leader", api.setLeader)
	tg.PUT("/groups/deadline", api.setFormationDeadline)
	tg.POST("/uploads", api.addUpload)
	tg.PUT("/uploads/:index/deadline", api.setUploadDeadline)
	tg.PUT("/submissions/:id/grade", api.saveGrade)
}

// Handlers

func (api *teacherApi) dashboard(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	view, err := api.svc.TeacherView(ctx.Request().Context(), sess, ctx.QueryParam("subject"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *teacherApi) createGroup(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	grp, err := api.svc.CreateEmptyGroup(ctx.Request().Context(), sess)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, grp)
}

func (api *teacherApi) deleteGroup(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	confirmed, _ := strconv.ParseBool(ctx.QueryParam("confirm"))
	if err = api.svc.DeleteGroup(ctx.Request().Context(), sess, ctx.QueryParam("name"), confirmed); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *teacherApi) setLeader(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	var data setLeaderReq
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to setLeaderReq")
	}
	grp, err := api.svc.SetLeader(ctx.Request().Context(), sess, data.Name, data.Leader)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, grp)
}

func (api *teacherApi) setFormationDeadline(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	var data deadlineReq
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to deadlineReq")
	}
	if err = api.svc.SetFormationDeadline(ctx.Request().Context(), sess, data.Deadline); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *teacherApi) addUpload(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	var data project.NewUpload
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUpload")
	}
	upload, err := api.svc.AddUpload(ctx.Request().Context(), sess, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, upload)
}

func (api *teacherApi) setUploadDeadline(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	index, err := strconv.Atoi(ctx.Param("index"))
	if err != nil {
		return errHttpNotFound
	}
	var data deadlineReq
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to deadlineReq")
	}
	upload, err := api.svc.SetUploadDeadline(ctx.Request().Context(), sess, index, data.Deadline)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, upload)
}

func (api *teacherApi) saveGrade(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	var data grade.SaveGrade
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SaveGrade")
	}
	grd, err := api.svc.SaveGrade(ctx.Request().Context(), sess, ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, grd)
}
