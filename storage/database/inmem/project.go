package inmemdb

import (
	"github.com/classportal/backend/core"
	"github.com/classportal/backend/core/project"
)

type projectRepository struct {
	db *projectTable
}

var _ project.Repository = (*projectRepository)(nil) // interface compliance check

func NewProjectRepository(db *DB) project.Repository {
	return &projectRepository{db: db.project}
}

func (repo *projectRepository) AppendUpload(upload project.Upload) (project.Upload, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	upload.Index = len(repo.db.table)
	repo.db.table = append(repo.db.table, &upload)
	return upload, nil
}

func (repo *projectRepository) GetUpload(index int) (project.Upload, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if index < 0 || index >= len(repo.db.table) {
		return project.Upload{}, core.NewNotFoundError(project.ErrNotFound)
	}
	return *repo.db.table[index], nil
}

func (repo *projectRepository) QueryUploads(subject string) ([]project.Upload, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	uploads := make([]project.Upload, 0)
	for _, u := range repo.db.table {
		if u.Subject == subject {
			uploads = append(uploads, *u)
		}
	}
	return uploads, nil
}

func (repo *projectRepository) SetUploadDeadline(index int, deadline string) (project.Upload, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if index < 0 || index >= len(repo.db.table) {
		return project.Upload{}, core.NewNotFoundError(project.ErrNotFound)
	}
	repo.db.table[index].Deadline = deadline
	return *repo.db.table[index], nil
}
