package inmemdb

import (
	"github.com/google/uuid"

	"github.com/classportal/backend/core"
	"github.com/classportal/backend/core/group"
)

type groupRepository struct {
	db *groupTable
}

var _ group.Repository = (*groupRepository)(nil) // interface compliance check

func NewGroupRepository(db *DB) group.Repository {
	return &groupRepository{db: db.group}
}

// find returns the group's position in its subject list, or -1. Callers hold the lock.
func (repo *groupRepository) find(subject, name string) int {
	for i, grp := range repo.db.table[subject] {
		if grp.Name == name {
			return i
		}
	}
	return -1
}

// findMember returns the position of the group `username` is in, or -1. Callers hold the lock.
func (repo *groupRepository) findMember(subject, username string) int {
	for i, grp := range repo.db.table[subject] {
		if grp.HasMember(username) {
			return i
		}
	}
	return -1
}

func (repo *groupRepository) InsertGroup(grp group.Group) (group.Group, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if repo.find(grp.Subject, grp.Name) >= 0 {
		return group.Group{}, core.NewDuplicateError(group.ErrNameExists)
	}
	for _, m := range grp.Members {
		if repo.findMember(grp.Subject, m) >= 0 {
			return group.Group{}, core.NewFieldError("name", group.ErrAlreadyInGroup)
		}
	}
	if grp.Members == nil {
		grp.Members = []string{}
	}
	grp.ID = uuid.New().String()
	stored := grp.Clone()
	repo.db.table[grp.Subject] = append(repo.db.table[grp.Subject], &stored)
	return stored.Clone(), nil
}

func (repo *groupRepository) NextSequence(subject string) int {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.sequences[subject]++
	return repo.db.sequences[subject]
}

func (repo *groupRepository) QueryGroups(subject string) ([]group.Group, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	groups := make([]group.Group, 0, len(repo.db.table[subject]))
	for _, grp := range repo.db.table[subject] {
		groups = append(groups, grp.Clone())
	}
	return groups, nil
}

func (repo *groupRepository) GetGroup(subject, name string) (group.Group, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if i := repo.find(subject, name); i >= 0 {
		return repo.db.table[subject][i].Clone(), nil
	}
	return group.Group{}, core.NewNotFoundError(group.ErrNotFound)
}

func (repo *groupRepository) GetMemberGroup(subject, username string) (group.Group, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if i := repo.findMember(subject, username); i >= 0 {
		return repo.db.table[subject][i].Clone(), nil
	}
	return group.Group{}, core.NewNotFoundError(group.ErrNotInGroup)
}

func (repo *groupRepository) AddMember(subject, name, username string) (group.Group, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	i := repo.find(subject, name)
	if i < 0 {
		return group.Group{}, core.NewNotFoundError(group.ErrNotFound)
	}
	grp := repo.db.table[subject][i]
	if grp.HasMember(username) {
		return grp.Clone(), nil
	}
	if repo.findMember(subject, username) >= 0 {
		return group.Group{}, core.NewFieldError("name", group.ErrAlreadyInGroup)
	}
	if grp.IsFull() {
		return group.Group{}, core.NewFieldError("name", group.ErrFull)
	}
	grp.Members = append(grp.Members, username)
	return grp.Clone(), nil
}

func (repo *groupRepository) RemoveMember(subject, username string) (group.Group, bool, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	i := repo.findMember(subject, username)
	if i < 0 {
		return group.Group{}, false, core.NewNotFoundError(group.ErrNotInGroup)
	}
	grp := repo.db.table[subject][i]
	members := make([]string, 0, len(grp.Members))
	for _, m := range grp.Members {
		if m != username {
			members = append(members, m)
		}
	}
	grp.Members = members
	if grp.Leader == username {
		grp.Leader = ""
	}

	if len(grp.Members) == 0 {
		repo.remove(subject, i)
		return grp.Clone(), true, nil
	}
	return grp.Clone(), false, nil
}

func (repo *groupRepository) SetLeader(subject, name, username string) (group.Group, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	i := repo.find(subject, name)
	if i < 0 {
		return group.Group{}, core.NewNotFoundError(group.ErrNotFound)
	}
	grp := repo.db.table[subject][i]
	if username != "" && !grp.HasMember(username) {
		return group.Group{}, core.NewFieldError("leader", group.ErrLeaderNotMember)
	}
	grp.Leader = username
	return grp.Clone(), nil
}

func (repo *groupRepository) DeleteGroup(subject, name string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	i := repo.find(subject, name)
	if i < 0 {
		return core.NewNotFoundError(group.ErrNotFound)
	}
	repo.remove(subject, i)
	return nil
}

// remove drops the i-th group of the subject, keeping the order of the others. Callers hold the lock.
func (repo *groupRepository) remove(subject string, i int) {
	groups := repo.db.table[subject]
	repo.db.table[subject] = append(groups[:i:i], groups[i+1:]...)
}

func (repo *groupRepository) SetFormationDeadline(subject, deadline string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if deadline == "" {
		delete(repo.db.deadlines, subject)
		return nil
	}
	repo.db.deadlines[subject] = deadline
	return nil
}

func (repo *groupRepository) GetFormationDeadline(subject string) (string, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.db.deadlines[subject], nil
}
