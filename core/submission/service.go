package submission

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/classportal/backend/core"
	"github.com/classportal/backend/core/group"
	"github.com/classportal/backend/core/project"
)

var (
	NowFunc = time.Now // mockable

	// errors
	ErrNotFound         = errors.New("submission not found")
	ErrNoGroup          = errors.New("join or create a group first")
	ErrBlankTitle       = errors.New("please enter a submission title")
	ErrInvalidType      = errors.New("submission type must be pdf or url")
	ErrFileRequired     = errors.New("please choose a file to submit")
	ErrURLRequired      = errors.New("please enter a URL")
	ErrProjectSelection = errors.New("please select a project to submit under")
	ErrAlreadySubmitted = errors.New("your group has already submitted for this subject")
)

type (
	// Repository is the append-only submission ledger.
	Repository interface {
		// AppendSubmission fails with ErrAlreadySubmitted if the group (by ID) already submitted for the subject.
		AppendSubmission(sub Submission) (Submission, error)
		GetSubmission(id string) (Submission, error)
		QuerySubmissions(filter QueryFilter) ([]Submission, error)
	}

	GroupFinder interface {
		GetUserGroup(subject, username string) (group.Group, error)
	}

	ProjectLister interface {
		ListForSubject(subject string) ([]project.Upload, error)
	}

	Service struct {
		repo     Repository
		groups   GroupFinder
		projects ProjectLister
	}
)

func NewService(repo Repository, groups GroupFinder, projects ProjectLister) *Service {
	return &Service{repo: repo, groups: groups, projects: projects}
}

// Submit records the work of the user's group for the subject.
// The checks run in a fixed order and the first failing one is reported.
func (svc *Service) Submit(ns NewSubmission) (Submission, error) {
	ns.clean()
	if err := core.CheckSubject(ns.Subject); err != nil {
		return Submission{}, err
	}

	grp, err := svc.groups.GetUserGroup(ns.Subject, ns.Username)
	if err != nil {
		if core.IsNotFound(err) {
			return Submission{}, core.NewFieldError("group", ErrNoGroup)
		}
		return Submission{}, err
	}
	if ns.Title == "" {
		return Submission{}, core.NewFieldError("title", ErrBlankTitle)
	}
	switch ns.Type {
	case project.TypePDF:
		if ns.File == "" {
			return Submission{}, core.NewFieldError("file", ErrFileRequired)
		}
	case project.TypeURL:
		if ns.URL == "" {
			return Submission{}, core.NewFieldError("url", ErrURLRequired)
		}
	default:
		return Submission{}, core.NewFieldError("type", ErrInvalidType)
	}

	projects, err := svc.projects.ListForSubject(ns.Subject)
	if err != nil {
		return Submission{}, err
	}
	selected := 0
	if ns.ProjectIndex != nil {
		selected = *ns.ProjectIndex
	}
	if len(projects) > 1 && (selected < 0 || selected >= len(projects)) {
		return Submission{}, core.NewFieldError("project_index", ErrProjectSelection)
	}

	now := NowFunc()
	sub := Submission{
		ID:          uuid.New().String(),
		Subject:     ns.Subject,
		Title:       ns.Title,
		Type:        ns.Type,
		Value:       ns.value(),
		SubmittedAt: now.UTC(),
		Date:        now.Local().Format("2006-01-02"),
		GroupID:     grp.ID,
		GroupName:   grp.Name,
		Members:     grp.Clone().Members,
		SubmittedBy: ns.Username,
	}
	if upload, ok := resolveProject(projects, selected); ok {
		idx := upload.Index
		sub.UploadIndex = &idx
		sub.ProjectTitle = upload.Title
	}
	return svc.repo.AppendSubmission(sub)
}

// resolveProject picks the selected project, falling back to the first one.
func resolveProject(projects []project.Upload, selected int) (project.Upload, bool) {
	if len(projects) == 0 {
		return project.Upload{}, false
	}
	if selected >= 0 && selected < len(projects) {
		return projects[selected], true
	}
	return projects[0], true
}

func (svc *Service) Get(id string) (Submission, error) {
	return svc.repo.GetSubmission(core.CleanString(id))
}

// ListForSubject returns every submission of the subject, oldest first.
func (svc *Service) ListForSubject(subject string) ([]Submission, error) {
	return svc.repo.QuerySubmissions(QueryFilter{Subject: core.CleanString(subject)})
}

// ListForGroup returns the submissions of the group, oldest first.
// A group recreated under a deleted group's name does not inherit its submissions.
func (svc *Service) ListForGroup(grp group.Group) ([]Submission, error) {
	if grp.ID == "" {
		return []Submission{}, nil
	}
	return svc.repo.QuerySubmissions(QueryFilter{Subject: grp.Subject, GroupID: grp.ID})
}

// History returns, across subjects, the submissions `username` took part in.
func (svc *Service) History(username string) ([]Submission, error) {
	username = core.CleanString(username)
	if username == "" {
		return []Submission{}, nil
	}
	return svc.repo.QuerySubmissions(QueryFilter{Member: username})
}
