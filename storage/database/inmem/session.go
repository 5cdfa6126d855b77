package inmemdb

import (
	"github.com/classportal/backend/core"
	"github.com/classportal/backend/core/session"
)

type sessionRepository struct {
	db *sessionTable
}

var _ session.Repository = (*sessionRepository)(nil) // interface compliance check

func NewSessionRepository(db *DB) session.Repository {
	return &sessionRepository{db: db.session}
}

func (repo *sessionRepository) CreateSession(sess session.Session) (session.Session, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[sess.ID]; ok {
		return session.Session{}, core.NewDuplicateError(session.ErrExists)
	}
	repo.db.table[sess.ID] = &sess
	return sess, nil
}

func (repo *sessionRepository) GetSession(id string) (session.Session, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if sess, ok := repo.db.table[id]; ok {
		return *sess, nil
	}
	return session.Session{}, core.NewNotFoundError(session.ErrNotFound)
}

func (repo *sessionRepository) SetActiveSubject(id, subject string) (session.Session, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	sess, ok := repo.db.table[id]
	if !ok {
		return session.Session{}, core.NewNotFoundError(session.ErrNotFound)
	}
	sess.ActiveSubject = subject
	return *sess, nil
}

func (repo *sessionRepository) DeleteSession(id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return core.NewNotFoundError(session.ErrNotFound)
	}
	delete(repo.db.table, id)
	return nil
}
