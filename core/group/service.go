package group

import (
	"errors"

	"github.com/classportal/backend/core"
)

var (
	// errors
	ErrNotFound             = errors.New("group not found")
	ErrNameExists           = errors.New("group name already exists")
	ErrFull                 = errors.New("group is full")
	ErrAlreadyInGroup       = errors.New("already a member of a group for this subject")
	ErrNotInGroup           = errors.New("not a member of any group for this subject")
	ErrLeaderNotMember      = errors.New("the leader must be a member of the group")
	ErrConfirmationRequired = errors.New("group deletion must be confirmed")
)

type (
	// Repository stores groups per subject.
	// Mutating calls check the group invariants and apply the change atomically.
	Repository interface {
		// InsertGroup fails with ErrNameExists or, if a member already belongs to a group of the subject, ErrAlreadyInGroup.
		InsertGroup(grp Group) (Group, error)
		// NextSequence returns the next value of the per-subject counter used for auto-naming.
		NextSequence(subject string) int
		QueryGroups(subject string) ([]Group, error)
		GetGroup(subject, name string) (Group, error)
		GetMemberGroup(subject, username string) (Group, error)
		// AddMember is a no-op if the user is already a member of the group.
		AddMember(subject, name, username string) (Group, error)
		// RemoveMember drops the group once it has no members left; deleted reports it.
		RemoveMember(subject, username string) (grp Group, deleted bool, err error)
		SetLeader(subject, name, username string) (Group, error)
		DeleteGroup(subject, name string) error
		SetFormationDeadline(subject, deadline string) error
		GetFormationDeadline(subject string) (string, error)
	}

	Service struct {
		repo      Repository
		validator *core.Validator
	}
)

func NewService(repo Repository, v *core.Validator) *Service {
	return &Service{repo: repo, validator: v}
}

// CreateGroup creates a group whose only member is its creator. No leader is set.
func (svc *Service) CreateGroup(ng NewGroup) (Group, error) {
	if err := ng.Validate(svc.validator); err != nil {
		return Group{}, err
	}
	return svc.repo.InsertGroup(Group{
		Subject: ng.Subject,
		Name:    ng.Name,
		Members: []string{ng.Creator},
	})
}

// CreateEmptyGroup creates a memberless group named after the subject's group counter.
// Names already taken (e.g. by students) are skipped.
func (svc *Service) CreateEmptyGroup(subject string) (Group, error) {
	subject = core.CleanString(subject)
	if err := core.CheckSubject(subject); err != nil {
		return Group{}, err
	}
	for {
		grp, err := svc.repo.InsertGroup(Group{
			Subject: subject,
			Name:    AutoName(svc.repo.NextSequence(subject)),
			Members: []string{},
		})
		if errors.Is(err, ErrNameExists) {
			continue
		}
		return grp, err
	}
}

// JoinGroup adds `username` to the group. Joining a group one is already part of does nothing.
func (svc *Service) JoinGroup(subject, name, username string) (Group, error) {
	subject = core.CleanString(subject)
	if err := core.CheckSubject(subject); err != nil {
		return Group{}, err
	}
	return svc.repo.AddMember(subject, core.CleanString(name), core.CleanString(username))
}

// LeaveGroup removes `username` from their group of the subject.
// It returns the group as left behind and whether it was deleted for being empty.
func (svc *Service) LeaveGroup(subject, username string) (Group, bool, error) {
	subject = core.CleanString(subject)
	if err := core.CheckSubject(subject); err != nil {
		return Group{}, false, err
	}
	return svc.repo.RemoveMember(subject, core.CleanString(username))
}

// SetLeader makes `username` the group leader. An empty username clears the leader.
func (svc *Service) SetLeader(subject, name, username string) (Group, error) {
	subject = core.CleanString(subject)
	if err := core.CheckSubject(subject); err != nil {
		return Group{}, err
	}
	return svc.repo.SetLeader(subject, core.CleanString(name), core.CleanString(username))
}

// DeleteGroup removes a group regardless of its members, once confirmed.
func (svc *Service) DeleteGroup(subject, name string, confirmed bool) error {
	subject = core.CleanString(subject)
	if err := core.CheckSubject(subject); err != nil {
		return err
	}
	if !confirmed {
		return core.NewFieldError("confirm", ErrConfirmationRequired)
	}
	return svc.repo.DeleteGroup(subject, core.CleanString(name))
}

func (svc *Service) ListForSubject(subject string) ([]Group, error) {
	return svc.repo.QueryGroups(core.CleanString(subject))
}

func (svc *Service) Get(subject, name string) (Group, error) {
	return svc.repo.GetGroup(core.CleanString(subject), core.CleanString(name))
}

// GetUserGroup returns the group `username` belongs to in the subject.
func (svc *Service) GetUserGroup(subject, username string) (Group, error) {
	return svc.repo.GetMemberGroup(core.CleanString(subject), core.CleanString(username))
}

// SetFormationDeadline records until when students are expected to form groups. Display only.
func (svc *Service) SetFormationDeadline(subject, deadline string) error {
	subject = core.CleanString(subject)
	if err := core.CheckSubject(subject); err != nil {
		return err
	}
	return svc.repo.SetFormationDeadline(subject, core.CleanString(deadline))
}

func (svc *Service) FormationDeadline(subject string) (string, error) {
	return svc.repo.GetFormationDeadline(core.CleanString(subject))
}
