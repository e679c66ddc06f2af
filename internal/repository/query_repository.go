package repository

import (
	"kyra_advising_backend/internal/model"

	"gorm.io/gorm"
)

// QueryLogFilter narrows query-log reads. Zero values mean "no filter";
// ProjectTitle equal to the AllProjects sentinel is treated as unset by the
// caller. Date bounds are inclusive and compare the date portion only.
type QueryLogFilter struct {
	StudentEmail string
	ProjectTitle string
	DateFrom     string // "2006-01-02"
	DateTo       string
}

type QueryRepository struct {
	DB *gorm.DB
}

func NewQueryRepository(db *gorm.DB) *QueryRepository {
	return &QueryRepository{DB: db}
}

// Exists reports whether a row with the same dedupe triple is present.
func (r *QueryRepository) Exists(email, question, timestamp string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Query{}).
		Where("email = ? AND question = ? AND timestamp = ?", email, question, timestamp).
		Count(&count).Error
	return count > 0, err
}

func (r *QueryRepository) Create(query *model.Query) error {
	return r.DB.Create(query).Error
}

// UpdateRating attaches the feedback rating to the (email, timestamp) row.
func (r *QueryRepository) UpdateRating(email, timestamp string, rating int) (int64, error) {
	res := r.DB.Model(&model.Query{}).
		Where("email = ? AND timestamp = ?", email, timestamp).
		Update("feedback_rating", rating)
	return res.RowsAffected, res.Error
}

func (r *QueryRepository) ListByEmail(email string, page, limit int) ([]model.Query, int64, error) {
	var queries []model.Query
	var total int64

	q := r.DB.Model(&model.Query{}).Where("email = ?", email)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := q.Order("timestamp DESC").Offset(offset).Limit(limit).Find(&queries).Error
	return queries, total, err
}

func (r *QueryRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Query{}).Count(&count).Error
	return count, err
}

// AvgRating averages the non-null feedback ratings; nil when none exist.
func (r *QueryRepository) AvgRating() (*float64, error) {
	var avg *float64
	err := r.DB.Model(&model.Query{}).
		Where("feedback_rating IS NOT NULL").
		Select("AVG(feedback_rating)").
		Scan(&avg).Error
	return avg, err
}

// Filtered returns export rows ordered by timestamp descending.
func (r *QueryRepository) Filtered(f QueryLogFilter) ([]model.Query, error) {
	q := r.DB.Model(&model.Query{})

	if f.StudentEmail != "" {
		q = q.Where("email = ?", f.StudentEmail)
	}
	if f.ProjectTitle != "" {
		q = q.Where("project_title = ?", f.ProjectTitle)
	}
	if f.DateFrom != "" {
		q = q.Where("DATE(timestamp) >= ?", f.DateFrom)
	}
	if f.DateTo != "" {
		q = q.Where("DATE(timestamp) <= ?", f.DateTo)
	}

	var rows []model.Query
	err := q.Order("timestamp DESC").Find(&rows).Error
	return rows, err
}
