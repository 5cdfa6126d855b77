package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/classportal/backend/core/dashboard"
	"github.com/classportal/backend/core/submission"
)

type studentApi struct {
	svc *dashboard.Service
}

type groupNameReq struct {
	Name string `json:"name"`
}

func registerStudentAPI(g *echo.Group, auth *authenticator, svc *dashboard.Service) {
	api := studentApi{svc: svc}

	sg := g.Group("/student", append(auth.required(), studentMiddleware)...)
	sg.GET("/dashboard", api.dashboard)
	sg.POST("/groups", api.createGroup)
	sg.POST("/groups/join", api.joinGroup)
	sg.POST("/groups/leave", api.leaveGroup)
	sg.POST("/submissions", api.submit)
}

// Handlers

func (api *studentApi) dashboard(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	view, err := api.svc.StudentView(ctx.Request().Context(), sess, ctx.QueryParam("subject"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *studentApi) createGroup(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	var data groupNameReq
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to groupNameReq")
	}
	grp, err := api.svc.CreateStudentGroup(ctx.Request().Context(), sess, data.Name)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, grp)
}

func (api *studentApi) joinGroup(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	var data groupNameReq
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to groupNameReq")
	}
	grp, err := api.svc.JoinGroup(ctx.Request().Context(), sess, data.Name)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, grp)
}

func (api *studentApi) leaveGroup(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.LeaveGroup(ctx.Request().Context(), sess); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *studentApi) submit(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	var data submission.NewSubmission
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubmission")
	}
	sub, err := api.svc.Submit(ctx.Request().Context(), sess, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, sub)
}
