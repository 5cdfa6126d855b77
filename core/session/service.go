package session

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/classportal/backend/core"
)

var (
	// errors
	ErrNotFound = errors.New("session not found")
	ErrExists   = errors.New("session already exists")
)

type (
	Repository interface {
		CreateSession(sess Session) (Session, error)
		GetSession(id string) (Session, error)
		SetActiveSubject(id, subject string) (Session, error)
		DeleteSession(id string) error
	}

	Service struct {
		repo           Repository
		validator      *core.Validator
		defaultSubject string
	}
)

func NewService(repo Repository, v *core.Validator, defaultSubject string) *Service {
	return &Service{repo: repo, validator: v, defaultSubject: defaultSubject}
}

// Start opens a session for the given username and role, on the default subject.
func (svc *Service) Start(ns NewSession) (Session, error) {
	if err := ns.Validate(svc.validator); err != nil {
		return Session{}, err
	}
	return svc.repo.CreateSession(Session{
		ID:            uuid.New().String(),
		Username:      ns.Username,
		Role:          ns.Role,
		ActiveSubject: svc.defaultSubject,
		CreatedAt:     time.Now().UTC(),
	})
}

func (svc *Service) Get(id string) (Session, error) {
	return svc.repo.GetSession(id)
}

// SelectSubject changes the active subject of a session. Any non-blank subject is valid.
func (svc *Service) SelectSubject(id string, ss SelectSubject) (Session, error) {
	if err := ss.Validate(svc.validator); err != nil {
		return Session{}, err
	}
	return svc.repo.SetActiveSubject(id, ss.Subject)
}

func (svc *Service) End(id string) error {
	return svc.repo.DeleteSession(id)
}
