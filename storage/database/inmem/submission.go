package inmemdb

import (
	"github.com/classportal/backend/core"
	"github.com/classportal/backend/core/submission"
)

type submissionRepository struct {
	db *submissionTable
}

var _ submission.Repository = (*submissionRepository)(nil) // interface compliance check

func NewSubmissionRepository(db *DB) submission.Repository {
	return &submissionRepository{db: db.submission}
}

func (repo *submissionRepository) AppendSubmission(sub submission.Submission) (submission.Submission, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, s := range repo.db.table {
		if s.Subject == sub.Subject && s.GroupID == sub.GroupID {
			return submission.Submission{}, core.NewDuplicateError(submission.ErrAlreadySubmitted)
		}
	}
	stored := clone(sub)
	repo.db.table = append(repo.db.table, &stored)
	return clone(stored), nil
}

func (repo *submissionRepository) GetSubmission(id string) (submission.Submission, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, s := range repo.db.table {
		if s.ID == id {
			return clone(*s), nil
		}
	}
	return submission.Submission{}, core.NewNotFoundError(submission.ErrNotFound)
}

func (repo *submissionRepository) QuerySubmissions(filter submission.QueryFilter) ([]submission.Submission, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	subs := make([]submission.Submission, 0)
	for _, s := range repo.db.table {
		if filter.Subject != "" && s.Subject != filter.Subject {
			continue
		}
		if filter.GroupID != "" && s.GroupID != filter.GroupID {
			continue
		}
		if filter.Member != "" && !contains(s.Members, filter.Member) {
			continue
		}
		subs = append(subs, clone(*s))
	}
	return subs, nil
}

func clone(s submission.Submission) submission.Submission {
	members := make([]string, len(s.Members))
	copy(members, s.Members)
	s.Members = members
	if s.UploadIndex != nil {
		idx := *s.UploadIndex
		s.UploadIndex = &idx
	}
	return s
}

func contains(items []string, item string) bool {
	for _, it := range items {
		if it == item {
			return true
		}
	}
	return false
}
