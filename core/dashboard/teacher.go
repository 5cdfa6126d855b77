package dashboard

import (
	"context"

	"github.com/classportal/backend/core"
	"github.com/classportal/backend/core/grade"
	"github.com/classportal/backend/core/group"
	"github.com/classportal/backend/core/project"
	"github.com/classportal/backend/core/session"
)

// TeacherView renders the teacher dashboard for `subject`, or for the session's active subject if blank.
func (svc *Service) TeacherView(ctx context.Context, sess session.Session, subject string) (TeacherView, error) {
	if err := requireTeacher(sess); err != nil {
		return TeacherView{}, err
	}
	subject, err := activeSubject(sess, subject)
	if err != nil {
		return TeacherView{}, err
	}

	view := TeacherView{Subject: subject, Subjects: svc.Subjects()}
	if view.Groups, err = svc.groups.ListForSubject(subject); err != nil {
		return TeacherView{}, err
	}
	if view.FormationDeadline, err = svc.groups.FormationDeadline(subject); err != nil {
		return TeacherView{}, err
	}
	if view.Uploads, err = svc.projects.ListForSubject(subject); err != nil {
		return TeacherView{}, err
	}
	subs, err := svc.submissions.ListForSubject(subject)
	if err != nil {
		return TeacherView{}, err
	}
	if view.Cards, err = svc.cards(subs); err != nil {
		return TeacherView{}, err
	}
	for i := range view.Cards {
		view.Cards[i].CanSave = view.Cards[i].Pending
	}
	view.Notice = svc.currentNotice(ctx, sess)
	return view, nil
}

// CreateEmptyGroup creates an auto-named empty group in the active subject.
func (svc *Service) CreateEmptyGroup(ctx context.Context, sess session.Session) (group.Group, error) {
	if err := requireTeacher(sess); err != nil {
		return group.Group{}, err
	}
	grp, err := svc.groups.CreateEmptyGroup(sess.ActiveSubject)
	if err != nil {
		return group.Group{}, err
	}
	svc.metrics.GroupCreated(grp.Subject)
	svc.notify(ctx, sess, "Group %q created for %s!", grp.Name, grp.Subject)
	return grp, nil
}

// DeleteGroup deletes a group of the active subject together with its memberships.
func (svc *Service) DeleteGroup(ctx context.Context, sess session.Session, name string, confirmed bool) error {
	if err := requireTeacher(sess); err != nil {
		return err
	}
	if err := svc.groups.DeleteGroup(sess.ActiveSubject, name, confirmed); err != nil {
		return err
	}
	svc.notify(ctx, sess, "Group %q deleted.", core.CleanString(name))
	return nil
}

// SetLeader picks the leader of a group of the active subject. A blank leader clears it.
func (svc *Service) SetLeader(ctx context.Context, sess session.Session, name, leader string) (group.Group, error) {
	if err := requireTeacher(sess); err != nil {
		return group.Group{}, err
	}
	grp, err := svc.groups.SetLeader(sess.ActiveSubject, name, leader)
	if err != nil {
		return group.Group{}, err
	}
	if grp.Leader == "" {
		svc.notify(ctx, sess, "Leader of %q cleared.", grp.Name)
	} else {
		svc.notify(ctx, sess, "%s now leads %q!", grp.Leader, grp.Name)
	}
	return grp, nil
}

func (svc *Service) SetFormationDeadline(ctx context.Context, sess session.Session, deadline string) error {
	if err := requireTeacher(sess); err != nil {
		return err
	}
	if err := svc.groups.SetFormationDeadline(sess.ActiveSubject, deadline); err != nil {
		return err
	}
	svc.notify(ctx, sess, "Group formation deadline saved for %s!", sess.ActiveSubject)
	return nil
}

// AddUpload posts a project to the active subject.
func (svc *Service) AddUpload(ctx context.Context, sess session.Session, nu project.NewUpload) (project.Upload, error) {
	if err := requireTeacher(sess); err != nil {
		return project.Upload{}, err
	}
	nu.Subject = sess.ActiveSubject
	upload, err := svc.projects.AddUpload(nu)
	if err != nil {
		return project.Upload{}, err
	}
	svc.metrics.UploadAdded(upload.Subject)
	svc.notify(ctx, sess, "Project %q uploaded for %s!", upload.Title, upload.Subject)
	return upload, nil
}

// SetUploadDeadline changes the deadline of the upload at catalog position `index`.
func (svc *Service) SetUploadDeadline(ctx context.Context, sess session.Session, index int, deadline string) (project.Upload, error) {
	if err := requireTeacher(sess); err != nil {
		return project.Upload{}, err
	}
	upload, err := svc.projects.SetDeadline(index, deadline)
	if err != nil {
		return project.Upload{}, err
	}
	svc.notify(ctx, sess, "Deadline updated for %q!", upload.Title)
	return upload, nil
}

// SaveGrade grades a submission. A submission is graded once: the grading form closes after saving.
func (svc *Service) SaveGrade(ctx context.Context, sess session.Session, submissionID string, sg grade.SaveGrade) (grade.Grade, error) {
	if err := requireTeacher(sess); err != nil {
		return grade.Grade{}, err
	}
	sub, err := svc.submissions.Get(submissionID)
	if err != nil {
		return grade.Grade{}, err
	}
	if _, err = svc.grades.Get(sub.ID); err == nil {
		return grade.Grade{}, core.NewDuplicateError(ErrAlreadyGraded)
	} else if !core.IsNotFound(err) {
		return grade.Grade{}, err
	}

	grd, err := svc.grades.Save(sub.ID, sg)
	if err != nil {
		return grade.Grade{}, err
	}
	svc.metrics.GradeSaved(sub.Subject)
	svc.notify(ctx, sess, "Grade saved for %q!", sub.Owner())
	return grd, nil
}
