package dashboard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classportal/backend/core"
	"github.com/classportal/backend/core/dashboard"
	"github.com/classportal/backend/core/grade"
	"github.com/classportal/backend/core/group"
	"github.com/classportal/backend/core/project"
	"github.com/classportal/backend/core/session"
	"github.com/classportal/backend/core/submission"
	"github.com/classportal/backend/testutil"
	"github.com/classportal/backend/testutil/testapp"
)

func startSession(t *testing.T, app *testapp.App, username, role, subject string) session.Session {
	sess, err := app.Sessions.Start(session.NewSession{Username: username, Role: role})
	require.NoError(t, err)
	sess, err = app.Sessions.SelectSubject(sess.ID, session.SelectSubject{Subject: subject})
	require.NoError(t, err)
	return sess
}

func TestService_submissionScenario(t *testing.T) {
	ctx := context.Background()
	app := testapp.New()
	svc := app.Dashboard

	teacher := startSession(t, app, "mr.t", session.RoleTeacher, "OS")
	alice := startSession(t, app, "alice", session.RoleStudent, "OS")

	upload, err := svc.AddUpload(ctx, teacher, project.NewUpload{Title: "Lab1", Type: "pdf", File: "lab1.pdf"})
	require.NoError(t, err)
	assert.Equal(t, "OS", upload.Subject)

	alpha, err := svc.CreateStudentGroup(ctx, alice, "Alpha")
	require.NoError(t, err)

	work := submission.NewSubmission{Title: "My Work", Type: "pdf", File: "work.pdf"}

	// sole member, but not the leader yet
	_, err = svc.Submit(ctx, alice, work)
	assert.True(t, errors.Is(err, dashboard.ErrNotLeader))
	assert.True(t, core.IsForbidden(err))

	view, err := svc.StudentView(ctx, alice, "")
	require.NoError(t, err)
	assert.False(t, view.IsLeader)
	assert.False(t, view.CanSubmit)

	_, err = svc.SetLeader(ctx, teacher, "Alpha", "alice")
	require.NoError(t, err)

	sub, err := svc.Submit(ctx, alice, work)
	require.NoError(t, err)
	assert.Equal(t, "Lab1", sub.ProjectTitle)

	subs, err := app.Submissions.QuerySubmissions(submission.QueryFilter{Subject: "OS", GroupID: alpha.ID})
	require.NoError(t, err)
	assert.Len(t, subs, 1)

	_, err = svc.Submit(ctx, alice, submission.NewSubmission{Title: "Again", Type: "url", URL: "https://x.io"})
	assert.True(t, core.IsDuplicate(err))

	subs, err = app.Submissions.QuerySubmissions(submission.QueryFilter{})
	require.NoError(t, err)
	assert.Len(t, subs, 1)

	view, err = svc.StudentView(ctx, alice, "")
	require.NoError(t, err)
	assert.Equal(t, `Group "Alpha" submitted for OS!`, view.Notice)
	assert.True(t, view.IsLeader)
	assert.False(t, view.CanSubmit, "a group submits once per subject")
	require.Len(t, view.Cards, 1)
	assert.True(t, view.Cards[0].Pending)
	assert.Equal(t, "Alpha-OS-0", view.Cards[0].Ref)
	assert.Len(t, view.History, 1)
}

func TestService_grading(t *testing.T) {
	ctx := context.Background()
	app := testapp.New()
	svc := app.Dashboard

	teacher := startSession(t, app, "mr.t", session.RoleTeacher, "OS")
	bob := startSession(t, app, "bob", session.RoleStudent, "OS")

	grp, err := svc.CreateStudentGroup(ctx, bob, "Beta")
	require.NoError(t, err)
	_, err = svc.SetLeader(ctx, teacher, grp.Name, "bob")
	require.NoError(t, err)
	sub, err := svc.Submit(ctx, bob, submission.NewSubmission{Title: "Essay", Type: "url", URL: "https://x.io"})
	require.NoError(t, err)

	view, err := svc.TeacherView(ctx, teacher, "")
	require.NoError(t, err)
	require.Len(t, view.Cards, 1)
	assert.True(t, view.Cards[0].CanSave)
	assert.Equal(t, submission.StatusOnTime, view.Cards[0].Status)

	_, err = svc.SaveGrade(ctx, teacher, sub.ID, grade.SaveGrade{Marks: " "})
	assert.True(t, core.IsValidation(err))
	_, err = app.Grades.GetGrade(sub.ID)
	assert.True(t, core.IsNotFound(err), "blank marks must not be stored")

	_, err = svc.SaveGrade(ctx, teacher, "nope", grade.SaveGrade{Marks: "90"})
	assert.True(t, core.IsNotFound(err))

	grd, err := svc.SaveGrade(ctx, teacher, sub.ID, grade.SaveGrade{Marks: "85", Feedback: "Good"})
	require.NoError(t, err)
	assert.Equal(t, "85", grd.Marks)

	_, err = svc.SaveGrade(ctx, teacher, sub.ID, grade.SaveGrade{Marks: "100"})
	assert.True(t, errors.Is(err, dashboard.ErrAlreadyGraded))

	view, err = svc.TeacherView(ctx, teacher, "")
	require.NoError(t, err)
	require.Len(t, view.Cards, 1)
	assert.False(t, view.Cards[0].CanSave)
	require.NotNil(t, view.Cards[0].Grade)
	assert.Equal(t, "85", view.Cards[0].Grade.Marks)
	assert.Equal(t, "Good", view.Cards[0].Grade.Feedback)

	studentView, err := svc.StudentView(ctx, bob, "")
	require.NoError(t, err)
	require.Len(t, studentView.Cards, 1)
	assert.False(t, studentView.Cards[0].Pending)
	assert.Equal(t, "85", studentView.Cards[0].Grade.Marks)
}

func TestService_deadlineStatus(t *testing.T) {
	ctx := context.Background()
	app := testapp.New()
	svc := app.Dashboard

	teacher := startSession(t, app, "mr.t", session.RoleTeacher, "OS")
	deadline := time.Date(2024, 5, 1, 10, 0, 0, 0, time.Local)

	tests := []struct {
		name        string
		deadline    string
		submittedAt time.Time
		want        string
	}{
		{name: "after", deadline: "2024-05-01T10:00", submittedAt: deadline.Add(time.Minute), want: submission.StatusMissedDeadline},
		{name: "equal", deadline: "2024-05-01T10:00", submittedAt: deadline, want: submission.StatusOnTime},
		{name: "before", deadline: "2024-05-01T10:00", submittedAt: deadline.Add(-time.Minute), want: submission.StatusOnTime},
		{name: "unset", submittedAt: deadline.Add(time.Minute), want: submission.StatusOnTime},
		{name: "unparsable", deadline: "end of May", submittedAt: deadline.Add(time.Minute), want: submission.StatusOnTime},
		{name: "date: same day", deadline: "2024-05-01", submittedAt: deadline.Add(12 * time.Hour), want: submission.StatusOnTime},
		{name: "date: next day", deadline: "2024-05-01", submittedAt: deadline.Add(14 * time.Hour), want: submission.StatusMissedDeadline},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject := teacher.ActiveSubject + "-" + tt.name
			teacher := teacher
			teacher.ActiveSubject = subject
			student := startSession(t, app, "student"+tt.name, session.RoleStudent, subject)

			upload, err := svc.AddUpload(ctx, teacher, project.NewUpload{Title: "Lab", Type: "pdf", File: "lab.pdf", Deadline: tt.deadline})
			require.NoError(t, err)
			_, err = svc.CreateStudentGroup(ctx, student, "G")
			require.NoError(t, err)
			_, err = svc.SetLeader(ctx, teacher, "G", student.Username)
			require.NoError(t, err)

			submission.NowFunc = func() time.Time { return tt.submittedAt }
			defer func() { submission.NowFunc = time.Now }()
			_, err = svc.Submit(ctx, student, submission.NewSubmission{Title: "Work", Type: "pdf", File: "w.pdf"})
			require.NoError(t, err)

			view, err := svc.TeacherView(ctx, teacher, "")
			require.NoError(t, err)
			require.Len(t, view.Cards, 1)
			assert.Equal(t, tt.want, view.Cards[0].Status)
			require.NotNil(t, view.Cards[0].Project)
			assert.Equal(t, upload.Index, view.Cards[0].Project.Index)
			assert.Equal(t, i, upload.Index)
		})
	}
}

func TestService_StudentView_groups(t *testing.T) {
	ctx := context.Background()
	app := testapp.New()
	svc := app.Dashboard

	teacher := startSession(t, app, "mr.t", session.RoleTeacher, "OS")
	alice := startSession(t, app, "alice", session.RoleStudent, "OS")
	bob := startSession(t, app, "bob", session.RoleStudent, "OS")

	_, err := svc.CreateEmptyGroup(ctx, teacher)
	require.NoError(t, err)
	_, err = svc.CreateStudentGroup(ctx, alice, "Alpha")
	require.NoError(t, err)
	_, err = svc.JoinGroup(ctx, bob, "Alpha")
	require.NoError(t, err)
	_, err = svc.CreateStudentGroup(ctx, startSession(t, app, "x", session.RoleStudent, "OS"), "Full")
	require.NoError(t, err)
	for _, u := range []string{"y", "z"} {
		_, err = svc.JoinGroup(ctx, startSession(t, app, u, session.RoleStudent, "OS"), "Full")
		require.NoError(t, err)
	}
	require.NoError(t, svc.SetFormationDeadline(ctx, teacher, "2024-05-01"))

	view, err := svc.StudentView(ctx, bob, "")
	require.NoError(t, err)

	want := dashboard.StudentView{
		Subject:  "OS",
		Subjects: core.DefaultSubjects,
		Username: "bob",
		Group:    &group.Group{Subject: "OS", Name: "Alpha", Members: []string{"alice", "bob"}},
		JoinableGroups: []group.Group{
			{Subject: "OS", Name: "Group 1", Members: []string{}},
		},
		FormationDeadline: "2024-05-01",
		Projects:          []project.Upload{},
		Cards:             []dashboard.Card{},
		History:           []dashboard.Card{},
		Notice:            `Joined group "Alpha"!`,
	}
	if diff := cmp.Diff(want, view, cmpopts.IgnoreFields(group.Group{}, "ID")); diff != "" {
		t.Errorf("StudentView() mismatch (-want +got):\n%s", diff)
	}

	// another subject is a separate world
	view, err = svc.StudentView(ctx, bob, "DBMS")
	require.NoError(t, err)
	assert.Nil(t, view.Group)
	assert.Empty(t, view.JoinableGroups)

	require.NoError(t, svc.LeaveGroup(ctx, bob))
	require.NoError(t, svc.LeaveGroup(ctx, alice))
	assert.True(t, core.IsNotFound(svc.LeaveGroup(ctx, alice)))

	teacherView, err := svc.TeacherView(ctx, teacher, "")
	require.NoError(t, err)
	names := make([]string, 0, len(teacherView.Groups))
	for _, g := range teacherView.Groups {
		names = append(names, g.Name)
	}
	assert.Equal(t, []string{"Group 1", "Full"}, names, "empty groups are pruned on leave")
}

func TestService_StudentView_otherSubject(t *testing.T) {
	ctx := context.Background()
	app := testapp.New()
	svc := app.Dashboard

	alice := startSession(t, app, "alice", session.RoleStudent, "OS")
	testutil.CreateGroup(t, app.Groups, "CN", "Net", "alice")
	_, err := app.Groups.SetLeader("CN", "Net", "alice")
	require.NoError(t, err)

	view, err := svc.StudentView(ctx, alice, "CN")
	require.NoError(t, err)
	assert.Equal(t, "CN", view.Subject)
	assert.True(t, view.IsLeader)
	assert.False(t, view.CanSubmit, "submitting goes to the active subject")

	alice = startSession(t, app, "alice", session.RoleStudent, "CN")
	view, err = svc.StudentView(ctx, alice, "")
	require.NoError(t, err)
	assert.True(t, view.CanSubmit)
}

func TestService_reusedGroupName(t *testing.T) {
	ctx := context.Background()
	app := testapp.New()
	svc := app.Dashboard

	teacher := startSession(t, app, "mr.t", session.RoleTeacher, "OS")
	alice := startSession(t, app, "alice", session.RoleStudent, "OS")
	bob := startSession(t, app, "bob", session.RoleStudent, "OS")
	work := submission.NewSubmission{Title: "Work", Type: "url", URL: "https://x.io"}

	old, err := svc.CreateStudentGroup(ctx, alice, "Alpha")
	require.NoError(t, err)
	_, err = svc.SetLeader(ctx, teacher, "Alpha", "alice")
	require.NoError(t, err)
	oldSub, err := svc.Submit(ctx, alice, work)
	require.NoError(t, err)
	_, err = svc.SaveGrade(ctx, teacher, oldSub.ID, grade.SaveGrade{Marks: "90"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteGroup(ctx, teacher, "Alpha", true))

	reused, err := svc.CreateStudentGroup(ctx, bob, "Alpha")
	require.NoError(t, err)
	assert.NotEqual(t, old.ID, reused.ID)
	_, err = svc.SetLeader(ctx, teacher, "Alpha", "bob")
	require.NoError(t, err)

	view, err := svc.StudentView(ctx, bob, "")
	require.NoError(t, err)
	assert.Empty(t, view.Cards, "the deleted group's submission stays with it")
	assert.True(t, view.CanSubmit)

	newSub, err := svc.Submit(ctx, bob, work)
	require.NoError(t, err)
	assert.Equal(t, reused.ID, newSub.GroupID)

	view, err = svc.StudentView(ctx, bob, "")
	require.NoError(t, err)
	require.Len(t, view.Cards, 1)
	assert.Equal(t, newSub.ID, view.Cards[0].Submission.ID)
	assert.True(t, view.Cards[0].Pending)
	assert.False(t, view.CanSubmit)

	teacherView, err := svc.TeacherView(ctx, teacher, "")
	require.NoError(t, err)
	assert.Len(t, teacherView.Cards, 2)
}

func TestService_roles(t *testing.T) {
	ctx := context.Background()
	app := testapp.New()
	svc := app.Dashboard

	teacher := startSession(t, app, "mr.t", session.RoleTeacher, "OS")
	student := startSession(t, app, "alice", session.RoleStudent, "OS")

	_, err := svc.TeacherView(ctx, student, "")
	assert.True(t, core.IsForbidden(err))
	_, err = svc.AddUpload(ctx, student, project.NewUpload{Title: "x", Type: "url", URL: "https://x.io"})
	assert.True(t, core.IsForbidden(err))
	_, err = svc.StudentView(ctx, teacher, "")
	assert.True(t, core.IsForbidden(err))
	_, err = svc.Submit(ctx, teacher, submission.NewSubmission{})
	assert.True(t, core.IsForbidden(err))

	err = svc.DeleteGroup(ctx, teacher, "Nope", false)
	assert.True(t, core.IsValidation(err))
}
