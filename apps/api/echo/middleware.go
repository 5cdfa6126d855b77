package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/classportal/backend/core"
)

// sessionMiddleware loads the session named by the token. Ended sessions are rejected.
func (a *authenticator) sessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		claims, err := getContextClaims(ctx)
		if err != nil {
			return errors.Wrap(err, "getting context claims")
		}
		sess, err := a.sessions.Get(claims.Subject)
		if err != nil {
			if core.IsNotFound(err) {
				return errSessionEnded
			}
			return errors.Wrap(err, "finding session by ID")
		}
		ctx.Set(contextSessionKey, sess)
		return next(ctx)
	}
}

func teacherMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		sess, err := getContextSession(ctx)
		if err != nil {
			return errors.Wrap(err, "getting context session")
		}
		if !sess.IsTeacher() {
			return errHttpForbidden
		}
		return next(ctx)
	}
}

func studentMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		sess, err := getContextSession(ctx)
		if err != nil {
			return errors.Wrap(err, "getting context session")
		}
		if !sess.IsStudent() {
			return errHttpForbidden
		}
		return next(ctx)
	}
}
