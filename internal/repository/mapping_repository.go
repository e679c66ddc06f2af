package repository

import (
	"kyra_advising_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MappingRepository struct {
	DB *gorm.DB
}

func NewMappingRepository(db *gorm.DB) *MappingRepository {
	return &MappingRepository{DB: db}
}

// Upsert replaces the single authoritative row for the student.
func (r *MappingRepository) Upsert(tx *gorm.DB, mapping *model.StudentProjectMapping) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_email"}},
		UpdateAll: true,
	}).Create(mapping).Error
}

func (r *MappingRepository) GetByEmail(email string) (*model.StudentProjectMapping, error) {
	var mapping model.StudentProjectMapping
	err := r.DB.Where("student_email = ?", email).First(&mapping).Error
	return &mapping, err
}

// AppendHistory records the project in the append-only join table.
func (r *MappingRepository) AppendHistory(tx *gorm.DB, entry *model.StudentProjectMap) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "project_id"}},
		DoNothing: true,
	}).Create(entry).Error
}

func (r *MappingRepository) DistinctTitles() ([]string, error) {
	var titles []string
	err := r.DB.Model(&model.StudentProjectMapping{}).
		Distinct("project_title").
		Order("project_title").
		Pluck("project_title", &titles).Error
	return titles, err
}

func (r *MappingRepository) CountDistinctTitles() (int64, error) {
	var count int64
	err := r.DB.Model(&model.StudentProjectMapping{}).
		Distinct("project_title").
		Count(&count).Error
	return count, err
}
