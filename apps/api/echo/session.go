package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/classportal/backend/core/dashboard"
	"github.com/classportal/backend/core/session"
)

type sessionApi struct {
	auth      *authenticator
	svc       *session.Service
	dashboard *dashboard.Service
}

type sessionResp struct {
	Token   string          `json:"token"`
	Session session.Session `json:"session"`
}

func registerSessionAPI(g *echo.Group, auth *authenticator, svc *session.Service, dash *dashboard.Service) {
	api := sessionApi{auth: auth, svc: svc, dashboard: dash}

	// un-authed endpoints
	g.POST("/sessions", api.start)
	g.GET("/subjects", api.subjects)

	// authed endpoints
	g.DELETE("/sessions", api.end, auth.required()...)
	g.PUT("/sessions/subject", api.selectSubject, auth.required()...)
}

// Handlers

func (api *sessionApi) start(ctx echo.Context) error {
	var data session.NewSession
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSession")
	}
	sess, err := api.svc.Start(data)
	if err != nil {
		return err
	}
	token, err := api.auth.generateToken(api.auth.sessionClaims(sess))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusCreated, sessionResp{Token: token, Session: sess})
}

func (api *sessionApi) end(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.End(sess.ID); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *sessionApi) selectSubject(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	var data session.SelectSubject
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SelectSubject")
	}
	sess, err = api.svc.SelectSubject(sess.ID, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sess)
}

func (api *sessionApi) subjects(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.dashboard.Subjects())
}
