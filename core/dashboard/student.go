package dashboard

import (
	"context"

	"github.com/classportal/backend/core"
	"github.com/classportal/backend/core/group"
	"github.com/classportal/backend/core/session"
	"github.com/classportal/backend/core/submission"
)

// Submission rejection reasons, as counted by the metrics.
const (
	reasonForbidden  = "forbidden"
	reasonValidation = "validation"
	reasonDuplicate  = "duplicate"
	reasonError      = "error"
)

// StudentView renders the student dashboard for `subject`, or for the session's active subject if blank.
// Only the active subject's view can offer submitting.
func (svc *Service) StudentView(ctx context.Context, sess session.Session, subject string) (StudentView, error) {
	if err := requireStudent(sess); err != nil {
		return StudentView{}, err
	}
	subject, err := activeSubject(sess, subject)
	if err != nil {
		return StudentView{}, err
	}

	view := StudentView{
		Subject:        subject,
		Subjects:       svc.Subjects(),
		Username:       sess.Username,
		JoinableGroups: []group.Group{},
		Cards:          []Card{},
	}

	grp, err := svc.groups.GetUserGroup(subject, sess.Username)
	switch {
	case err == nil:
		view.Group = &grp
		view.IsLeader = grp.IsLeader(sess.Username)
	case !core.IsNotFound(err):
		return StudentView{}, err
	}

	groups, err := svc.groups.ListForSubject(subject)
	if err != nil {
		return StudentView{}, err
	}
	for _, g := range groups {
		if !g.IsFull() && !g.HasMember(sess.Username) {
			view.JoinableGroups = append(view.JoinableGroups, g)
		}
	}
	if view.FormationDeadline, err = svc.groups.FormationDeadline(subject); err != nil {
		return StudentView{}, err
	}
	if view.Projects, err = svc.projects.ListForSubject(subject); err != nil {
		return StudentView{}, err
	}

	if view.Group != nil {
		subs, err := svc.submissions.ListForGroup(*view.Group)
		if err != nil {
			return StudentView{}, err
		}
		if view.Cards, err = svc.cards(subs); err != nil {
			return StudentView{}, err
		}
		// Submit always targets the active subject; other subjects are read only
		view.CanSubmit = view.IsLeader && len(subs) == 0 && subject == sess.ActiveSubject
	}

	history, err := svc.submissions.History(sess.Username)
	if err != nil {
		return StudentView{}, err
	}
	if view.History, err = svc.cards(history); err != nil {
		return StudentView{}, err
	}
	view.Notice = svc.currentNotice(ctx, sess)
	return view, nil
}

// CreateStudentGroup founds a group in the active subject with the student as its only member.
func (svc *Service) CreateStudentGroup(ctx context.Context, sess session.Session, name string) (group.Group, error) {
	if err := requireStudent(sess); err != nil {
		return group.Group{}, err
	}
	grp, err := svc.groups.CreateGroup(group.NewGroup{
		Subject: sess.ActiveSubject,
		Name:    name,
		Creator: sess.Username,
	})
	if err != nil {
		return group.Group{}, err
	}
	svc.metrics.GroupCreated(grp.Subject)
	svc.notify(ctx, sess, "Group %q created for %s!", grp.Name, grp.Subject)
	return grp, nil
}

func (svc *Service) JoinGroup(ctx context.Context, sess session.Session, name string) (group.Group, error) {
	if err := requireStudent(sess); err != nil {
		return group.Group{}, err
	}
	grp, err := svc.groups.JoinGroup(sess.ActiveSubject, name, sess.Username)
	if err != nil {
		return group.Group{}, err
	}
	svc.notify(ctx, sess, "Joined group %q!", grp.Name)
	return grp, nil
}

func (svc *Service) LeaveGroup(ctx context.Context, sess session.Session) error {
	if err := requireStudent(sess); err != nil {
		return err
	}
	grp, _, err := svc.groups.LeaveGroup(sess.ActiveSubject, sess.Username)
	if err != nil {
		return err
	}
	svc.notify(ctx, sess, "Left group %q.", grp.Name)
	return nil
}

// Submit hands in the work of the student's group for the active subject. Only the leader may submit.
func (svc *Service) Submit(ctx context.Context, sess session.Session, ns submission.NewSubmission) (submission.Submission, error) {
	sub, err := svc.submit(sess, ns)
	if err != nil {
		svc.metrics.SubmissionRejected(sess.ActiveSubject, rejectionReason(err))
		return submission.Submission{}, err
	}
	svc.metrics.SubmissionAccepted(sub.Subject)
	svc.notify(ctx, sess, "Group %q submitted for %s!", sub.GroupName, sub.Subject)
	return sub, nil
}

func (svc *Service) submit(sess session.Session, ns submission.NewSubmission) (submission.Submission, error) {
	if err := requireStudent(sess); err != nil {
		return submission.Submission{}, err
	}
	ns.Subject = sess.ActiveSubject
	ns.Username = sess.Username

	// without a group, Submit reports the missing group itself
	grp, err := svc.groups.GetUserGroup(ns.Subject, ns.Username)
	if err == nil && !grp.IsLeader(sess.Username) {
		return submission.Submission{}, core.NewForbiddenError(ErrNotLeader)
	} else if err != nil && !core.IsNotFound(err) {
		return submission.Submission{}, err
	}
	return svc.submissions.Submit(ns)
}

func rejectionReason(err error) string {
	switch {
	case core.IsForbidden(err):
		return reasonForbidden
	case core.IsValidation(err):
		return reasonValidation
	case core.IsDuplicate(err):
		return reasonDuplicate
	default:
		return reasonError
	}
}
