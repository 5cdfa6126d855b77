package inmemdb

import (
	"github.com/classportal/backend/core"
	"github.com/classportal/backend/core/grade"
)

type gradeRepository struct {
	db *gradeTable
}

var _ grade.Repository = (*gradeRepository)(nil) // interface compliance check

func NewGradeRepository(db *DB) grade.Repository {
	return &gradeRepository{db: db.grade}
}

func (repo *gradeRepository) UpsertGrade(grd grade.Grade) (grade.Grade, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table[grd.SubmissionID] = &grd
	return grd, nil
}

func (repo *gradeRepository) GetGrade(submissionID string) (grade.Grade, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if grd, ok := repo.db.table[submissionID]; ok {
		return *grd, nil
	}
	return grade.Grade{}, core.NewNotFoundError(grade.ErrNotFound)
}
