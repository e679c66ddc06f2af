package repository

import (
	"kyra_advising_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectRepository struct {
	DB *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{DB: db}
}

func (r *ProjectRepository) Create(tx *gorm.DB, project *model.Project) error {
	return tx.Create(project).Error
}

func (r *ProjectRepository) CreateIfAbsent(tx *gorm.DB, project *model.Project) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "project_id"}},
		DoNothing: true,
	}).Create(project).Error
}

// ListByEmail returns a student's project submission history, newest first.
func (r *ProjectRepository) ListByEmail(email string) ([]model.Project, error) {
	var projects []model.Project
	err := r.DB.Where("email = ?", email).
		Order("timestamp DESC").
		Find(&projects).Error
	return projects, err
}
