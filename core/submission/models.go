package submission

import (
	"fmt"
	"time"

	"github.com/classportal/backend/core"
	"github.com/classportal/backend/core/project"
)

// Statuses
const (
	StatusOnTime         = "On Time"
	StatusMissedDeadline = "Missed Deadline"
)

// Submission is a group's one piece of work for a subject. It is never changed once recorded.
type Submission struct {
	ID           string    `json:"id"`
	Subject      string    `json:"subject"`
	UploadIndex  *int      `json:"upload_index,omitempty"` // catalog index of the project submitted under
	ProjectTitle string    `json:"project_title"`
	Title        string    `json:"title"`
	Type         string    `json:"type"`
	Value        string    `json:"value"` // file name or URL
	SubmittedAt  time.Time `json:"submitted_at"`
	Date         string    `json:"date"` // local date, 2006-01-02
	GroupID      string    `json:"group_id"`
	GroupName    string    `json:"group_name"`
	Members      []string  `json:"members"` // as of submission time
	SubmittedBy  string    `json:"submitted_by"`
}

// Owner is the group name, or the submitter for submissions made outside a group.
func (s Submission) Owner() string {
	if s.GroupName != "" {
		return s.GroupName
	}
	return s.SubmittedBy
}

// DeriveID builds the list-position reference `{owner}-{subject}-{position}` of a submission.
// It depends on how the list it was taken from was filtered, so grades are keyed by ID instead.
func DeriveID(s Submission, position int) string {
	return fmt.Sprintf("%s-%s-%d", s.Owner(), s.Subject, position)
}

// Status tells whether the submission came in before the project's deadline.
// Without a project, or a readable deadline, a submission is on time.
func Status(s Submission, upload *project.Upload) string {
	if upload == nil {
		return StatusOnTime
	}
	deadline, ok := upload.DeadlineTime()
	if ok && s.SubmittedAt.After(deadline) {
		return StatusMissedDeadline
	}
	return StatusOnTime
}

// NewSubmission contains the fields of a group leader's submission form.
type NewSubmission struct {
	Subject      string `json:"subject"`
	Username     string `json:"-"`
	ProjectIndex *int   `json:"project_index"` // position among the subject's projects; defaults to the first
	Title        string `json:"title"`
	Type         string `json:"type"`
	URL          string `json:"url"`
	File         string `json:"file"`
}

func (ns *NewSubmission) clean() {
	ns.Subject = core.CleanString(ns.Subject)
	ns.Username = core.CleanString(ns.Username)
	ns.Title = core.CleanString(ns.Title)
	ns.Type = core.CleanString(ns.Type, true /* lower */)
	ns.URL = core.CleanString(ns.URL)
	ns.File = core.CleanString(ns.File)
}

func (ns NewSubmission) value() string {
	if ns.Type == project.TypeURL {
		return ns.URL
	}
	return ns.File
}

// QueryFilter applies AND on its set fields.
type QueryFilter struct {
	Subject string
	GroupID string
	Member  string // matches the members snapshot
}
