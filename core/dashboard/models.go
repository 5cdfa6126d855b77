package dashboard

import (
	"github.com/classportal/backend/core/grade"
	"github.com/classportal/backend/core/group"
	"github.com/classportal/backend/core/project"
	"github.com/classportal/backend/core/submission"
)

// Card is a submission as rendered on a dashboard.
type Card struct {
	Submission submission.Submission `json:"submission"`
	Ref        string                `json:"ref"` // list-position reference, display only
	Project    *project.Upload       `json:"project,omitempty"`
	Status     string                `json:"status"`
	Grade      *grade.Grade          `json:"grade,omitempty"`
	Pending    bool                  `json:"pending"`  // not graded yet
	CanSave    bool                  `json:"can_save"` // the grading form is open (teacher only)
}

// TeacherView is everything the teacher dashboard shows for one subject.
type TeacherView struct {
	Subject           string           `json:"subject"`
	Subjects          []string         `json:"subjects"`
	Groups            []group.Group    `json:"groups"`
	FormationDeadline string           `json:"formation_deadline,omitempty"`
	Uploads           []project.Upload `json:"uploads"`
	Cards             []Card           `json:"cards"`
	Notice            string           `json:"notice,omitempty"`
}

// StudentView is everything the student dashboard shows for one subject.
type StudentView struct {
	Subject           string           `json:"subject"`
	Subjects          []string         `json:"subjects"`
	Username          string           `json:"username"`
	Group             *group.Group     `json:"group,omitempty"`
	IsLeader          bool             `json:"is_leader"`
	CanSubmit         bool             `json:"can_submit"` // leader whose group has not submitted yet
	JoinableGroups    []group.Group    `json:"joinable_groups"`
	FormationDeadline string           `json:"formation_deadline,omitempty"`
	Projects          []project.Upload `json:"projects"`
	Cards             []Card           `json:"cards"`   // the group's submissions for the subject
	History           []Card           `json:"history"` // every submission the student took part in
	Notice            string           `json:"notice,omitempty"`
}
