package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

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
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)
	defer logger.Close()

	// all portal state lives in this process
	db, err := inmemdb.Open()
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening in-memory store: %v", err), err)
	}

	notices, closeNotices := setUpNotices(conf, logger)
	defer closeNotices()

	metrics := metricsvc.NewPrometheusMetrics()

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	v := core.NewValidator()
	project.InitValidators(v.Validate, v.Translator)

	groupSvc := group.NewService(inmemdb.NewGroupRepository(db), v)
	projectSvc := project.NewService(inmemdb.NewProjectRepository(db), v)
	submissionSvc := submission.NewService(inmemdb.NewSubmissionRepository(db), groupSvc, projectSvc)
	gradeSvc := grade.NewService(inmemdb.NewGradeRepository(db), v)
	sessionSvc := session.NewService(inmemdb.NewSessionRepository(db), v, conf.DefaultSubject())

	dashSvc := dashboard.NewService(dashboard.Deps{
		Groups:      groupSvc,
		Projects:    projectSvc,
		Submissions: submissionSvc,
		Grades:      gradeSvc,
		Notices:     notices,
		Metrics:     metrics,
		Logger:      logger,
		Subjects:    conf.Portal.Subjects,
	})

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:      conf,
			Logger:    logger,
			Validator: v,
			Sessions:  sessionSvc,
			Dashboard: dashSvc,
			Metrics:   metrics,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

// setUpNotices picks the notice backend. Redis lets several API processes share notices.
func setUpNotices(conf *core.Config, logger core.Logger) (core.Notifier, func()) {
	switch conf.Portal.NoticeBackend {
	case "redis":
		client := noticesvc.NewRedisClient(conf.Redis)
		notifier := noticesvc.NewRedisNotifier(client, conf.Redis.KeyPrefix, conf.Portal.NoticeTTL)

		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()
		if !notifier.Healthy(ctx) {
			logger.Warn(fmt.Sprintf("redis at %q unreachable, notices will fail until it is up", conf.Redis.Addr))
		}
		return notifier, func() {
			if err := client.Close(); err != nil {
				logger.Error("closing redis client", err)
			}
		}
	default:
		return noticesvc.NewMemoryNotifier(conf.Portal.NoticeTTL), func() {}
	}
}
