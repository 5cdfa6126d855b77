package session

import (
	"time"

	"github.com/classportal/backend/core"
)

// Roles
const (
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

var AllRoles = []string{RoleTeacher, RoleStudent}

// Session is one signed-in client: who they are, which dashboard they use
// and which subject they are looking at.
type Session struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Role          string    `json:"role"`
	ActiveSubject string    `json:"active_subject"`
	CreatedAt     time.Time `json:"created_at"` // UTC
}

func (s Session) IsTeacher() bool { return s.Role == RoleTeacher }
func (s Session) IsStudent() bool { return s.Role == RoleStudent }

// NewSession contains the information supplied by the login collaborator.
type NewSession struct {
	Username string `json:"username" validate:"notblank,max=64"`
	Role     string `json:"role" validate:"required,oneof=teacher student"`
}

func (ns *NewSession) Validate(v *core.Validator) error {
	ns.Username = core.CleanString(ns.Username)
	ns.Role = core.CleanString(ns.Role, true /* lower */)
	return v.Struct(ns)
}

// SelectSubject is the payload of a subject change.
type SelectSubject struct {
	Subject string `json:"subject" validate:"notblank"`
}

func (ss *SelectSubject) Validate(v *core.Validator) error {
	ss.Subject = core.CleanString(ss.Subject)
	return v.Struct(ss)
}
