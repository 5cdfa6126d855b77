package echoapi

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/classportal/backend/core"
	"github.com/classportal/backend/core/session"
)

var (
	contextTokenKey   = "sessionToken"
	contextSessionKey = "session"
)

// Claims represents the session claims transmitted via a JWT.
// No password is involved: the token only proves which session the client started.
type Claims struct {
	jwt.StandardClaims
	Username  string `json:"username,omitempty"`
	Role      string `json:"role,omitempty"`
	IsStudent bool   `json:"is_student,omitempty"` // -> STUDENT DASHBOARD
	IsTeacher bool   `json:"is_teacher,omitempty"` // -> TEACHER DASHBOARD
}

type authenticator struct {
	appName         string
	signingKey      []byte
	expirationDelta time.Duration
	sessions        *session.Service
	jwt             echo.MiddlewareFunc
}

func newAuthenticator(conf *core.Config, sessions *session.Service) *authenticator {
	a := &authenticator{
		appName:         conf.AppName,
		signingKey:      []byte(conf.SecretKey),
		expirationDelta: conf.Server.JWTExpirationDelta,
		sessions:        sessions,
	}
	a.jwt = middleware.JWTWithConfig(middleware.JWTConfig{
		SigningKey:    a.signingKey,
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    contextTokenKey,
		Claims:        new(Claims),
	})
	return a
}

func (a *authenticator) sessionClaims(sess session.Session) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    a.appName,
			Subject:   sess.ID,
			Audience:  "Classroom",
			ExpiresAt: now.Add(a.expirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Username:  sess.Username,
		Role:      sess.Role,
		IsStudent: sess.IsStudent(),
		IsTeacher: sess.IsTeacher(),
	}
}

// generateToken generates a signed JWT token string representing the session Claims.
func (a *authenticator) generateToken(claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.GetSigningMethod(middleware.AlgorithmHS256), claims)
	ss, err := token.SignedString(a.signingKey)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

// required chains the JWT check with the loading of the session it names.
func (a *authenticator) required() []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{a.jwt, a.sessionMiddleware}
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(contextTokenKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

func getContextSession(ctx echo.Context) (session.Session, error) {
	if sess, ok := ctx.Get(contextSessionKey).(session.Session); ok {
		return sess, nil
	}
	return session.Session{}, errUnauthorized
}
