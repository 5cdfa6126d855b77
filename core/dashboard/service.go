package dashboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/classportal/backend/core"
	"github.com/classportal/backend/core/grade"
	"github.com/classportal/backend/core/group"
	"github.com/classportal/backend/core/project"
	"github.com/classportal/backend/core/session"
	"github.com/classportal/backend/core/submission"
)

var (
	// errors
	ErrTeacherOnly     = errors.New("only teachers can do this")
	ErrStudentOnly     = errors.New("only students can do this")
	ErrNotLeader       = errors.New("only the group leader can submit")
	ErrAlreadyGraded   = errors.New("this submission has already been graded")
	ErrNoActiveSubject = errors.New("select a subject first")
)

type (
	Deps struct {
		Groups      *group.Service
		Projects    *project.Service
		Submissions *submission.Service
		Grades      *grade.Service
		Notices     core.Notifier
		Metrics     core.Metrics
		Logger      core.Logger
		Subjects    []string
	}

	// Service drives both dashboards. Views are read fresh on every call,
	// so changes made by one role are seen by the other right away.
	Service struct {
		groups      *group.Service
		projects    *project.Service
		submissions *submission.Service
		grades      *grade.Service
		notices     core.Notifier
		metrics     core.Metrics
		logger      core.Logger
		subjects    []string
	}
)

func NewService(deps Deps) *Service {
	svc := &Service{
		groups:      deps.Groups,
		projects:    deps.Projects,
		submissions: deps.Submissions,
		grades:      deps.Grades,
		notices:     deps.Notices,
		metrics:     deps.Metrics,
		logger:      deps.Logger,
		subjects:    deps.Subjects,
	}
	if svc.metrics == nil {
		svc.metrics = core.NopMetrics{}
	}
	if svc.subjects == nil {
		svc.subjects = core.DefaultSubjects
	}
	return svc
}

// Subjects lists the known subjects, for navigation.
func (svc *Service) Subjects() []string {
	subjects := make([]string, len(svc.subjects))
	copy(subjects, svc.subjects)
	return subjects
}

func activeSubject(sess session.Session, subject string) (string, error) {
	if subject = core.CleanString(subject); subject != "" {
		return subject, nil
	}
	if subject = core.CleanString(sess.ActiveSubject); subject != "" {
		return subject, nil
	}
	return "", core.NewFieldError("subject", ErrNoActiveSubject)
}

func requireTeacher(sess session.Session) error {
	if !sess.IsTeacher() {
		return core.NewForbiddenError(ErrTeacherOnly)
	}
	return nil
}

func requireStudent(sess session.Session) error {
	if !sess.IsStudent() {
		return core.NewForbiddenError(ErrStudentOnly)
	}
	return nil
}

// notify records a notice for the session. Failing to do so never fails the action.
func (svc *Service) notify(ctx context.Context, sess session.Session, format string, args ...interface{}) {
	if svc.notices == nil {
		return
	}
	if err := svc.notices.Notify(ctx, sess.ID, fmt.Sprintf(format, args...)); err != nil {
		svc.logger.Warn("notice not recorded", err, sess)
	}
}

func (svc *Service) currentNotice(ctx context.Context, sess session.Session) string {
	if svc.notices == nil {
		return ""
	}
	msg, err := svc.notices.Current(ctx, sess.ID)
	if err != nil {
		svc.logger.Warn("notice not read", err, sess)
		return ""
	}
	return msg
}

// card renders a submission. pos is its position in the list being shown.
func (svc *Service) card(sub submission.Submission, pos int) (Card, error) {
	c := Card{Submission: sub, Ref: submission.DeriveID(sub, pos)}

	if sub.UploadIndex != nil {
		upload, err := svc.projects.Get(*sub.UploadIndex)
		switch {
		case err == nil:
			c.Project = &upload
		case !core.IsNotFound(err):
			return Card{}, err
		}
	}
	c.Status = submission.Status(sub, c.Project)

	grd, err := svc.grades.Get(sub.ID)
	switch {
	case err == nil:
		c.Grade = &grd
	case core.IsNotFound(err):
		c.Pending = true
	default:
		return Card{}, err
	}
	return c, nil
}

func (svc *Service) cards(subs []submission.Submission) ([]Card, error) {
	cards := make([]Card, 0, len(subs))
	for i, sub := range subs {
		c, err := svc.card(sub, i)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}
