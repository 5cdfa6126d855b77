package group

import (
	"fmt"

	"github.com/classportal/backend/core"
)

// MaxMembers is the size limit of a group.
const MaxMembers = 3

// Group is a named set of students working together on one subject.
// Names can be reused once a group is deleted, so submissions refer to the ID.
type Group struct {
	ID      string   `json:"id"`
	Subject string   `json:"subject"`
	Name    string   `json:"name"`
	Members []string `json:"members"`
	Leader  string   `json:"leader,omitempty"`
}

func (g Group) HasMember(username string) bool {
	for _, m := range g.Members {
		if m == username {
			return true
		}
	}
	return false
}

func (g Group) IsFull() bool { return len(g.Members) >= MaxMembers }

func (g Group) IsLeader(username string) bool { return g.Leader != "" && g.Leader == username }

// Clone returns a copy that does not share its member list with `g`.
func (g Group) Clone() Group {
	members := make([]string, len(g.Members))
	copy(members, g.Members)
	g.Members = members
	return g
}

// AutoName is the name given to the n-th group a teacher creates in a subject.
func AutoName(n int) string {
	return fmt.Sprintf("Group %d", n)
}

// NewGroup contains the information needed for a student to found a group.
type NewGroup struct {
	Subject string `json:"subject" validate:"notblank"`
	Name    string `json:"name" validate:"notblank,max=64"`
	Creator string `json:"creator" validate:"notblank"`
}

func (ng *NewGroup) Validate(v *core.Validator) error {
	ng.Subject = core.CleanString(ng.Subject)
	ng.Name = core.CleanString(ng.Name)
	ng.Creator = core.CleanString(ng.Creator)
	return v.Struct(ng)
}
