// Package testapp wires the whole portal in memory for end-to-end tests.
package testapp

import (
	"io"
	"log"
	"time"

	echoapi "github.com/classportal/backend/apps/api/echo"
	"github.com/classportal/backend/core"
	"github.com/classportal/backend/core/dashboard"
	"github.com/classportal/backend/core/grade"
	"github.com/classportal/backend/core/group"
	"github.com/classportal/backend/core/project"
	"github.com/classportal/backend/core/session"
	"github.com/classportal/backend/core/submission"
	logsvc "github.com/classportal/backend/services/logger"
	metricsvc "github.com/classportal/backend/services/metrics"
	noticesvc "github.com/classportal/backend/services/notice"
	inmemdb "github.com/classportal/backend/storage/database/inmem"
	"github.com/classportal/backend/testutil"
)

type App struct {
	Conf      *core.Config
	Logger    *logsvc.RollbarLogger
	Validator *core.Validator
	Metrics   *metricsvc.PrometheusMetrics

	Groups      group.Repository
	Projects    project.Repository
	Submissions submission.Repository
	Grades      grade.Repository

	Sessions  *session.Service
	Dashboard *dashboard.Service
	Server    echoapi.Server
}

// Config is a test configuration: quiet, not in debug mode (so errors render as in production).
func Config() *core.Config {
	return &core.Config{
		AppName:   "Class Portal",
		Env:       "TEST",
		TestMode:  true,
		SecretKey: "secret",
		Server: core.ServerConfig{
			Host:               "localhost",
			DisableReqLogs:     true,
			ShutdownTimeout:    time.Second,
			JWTExpirationDelta: time.Hour,
		},
		Portal: core.PortalConfig{
			Subjects:  core.DefaultSubjects,
			NoticeTTL: time.Minute,
		},
	}
}

func New() *App {
	conf := Config()
	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf)
	logger.Enable(false)

	db, _ := inmemdb.Open() // never fails
	v := testutil.NewValidator()

	app := &App{
		Conf:        conf,
		Logger:      logger,
		Validator:   v,
		Metrics:     metricsvc.NewPrometheusMetrics(),
		Groups:      inmemdb.NewGroupRepository(db),
		Projects:    inmemdb.NewProjectRepository(db),
		Submissions: inmemdb.NewSubmissionRepository(db),
		Grades:      inmemdb.NewGradeRepository(db),
	}

	groupSvc := group.NewService(app.Groups, v)
	projectSvc := project.NewService(app.Projects, v)
	app.Sessions = session.NewService(inmemdb.NewSessionRepository(db), v, conf.DefaultSubject())
	app.Dashboard = dashboard.NewService(dashboard.Deps{
		Groups:      groupSvc,
		Projects:    projectSvc,
		Submissions: submission.NewService(app.Submissions, groupSvc, projectSvc),
		Grades:      grade.NewService(app.Grades, v),
		Notices:     noticesvc.NewMemoryNotifier(conf.Portal.NoticeTTL),
		Metrics:     app.Metrics,
		Logger:      logger,
		Subjects:    conf.Portal.Subjects,
	})
	app.Server = echoapi.NewServer(echoapi.ServerDeps{
		Conf:      conf,
		Logger:    logger,
		Validator: v,
		Sessions:  app.Sessions,
		Dashboard: app.Dashboard,
		Metrics:   app.Metrics,
	})
	return app
}
