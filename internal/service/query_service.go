package service

import (
	"kyra_advising_backend/internal/model"
	"kyra_advising_backend/internal/repository"
	"kyra_advising_backend/internal/util"

	"github.com/google/uuid"
)

type QueryService struct {
	QueryRepo  *repository.QueryRepository
	ProjectSvc *ProjectService
}

func NewQueryService(queryRepo *repository.QueryRepository, projectSvc *ProjectService) *QueryService {
	return &QueryService{
		QueryRepo:  queryRepo,
		ProjectSvc: projectSvc,
	}
}

// SaveQuery persists one exchange. A missing project title resolves through
// the mapping with the sentinel fallback. A second call with the same
// (email, question, timestamp) triple is silently skipped.
func (s *QueryService) SaveQuery(email, name, projectTitle, question, response, timestamp string, rating *int) error {
	if !util.IsValidEmail(email) {
		return util.ErrInvalidEmail
	}
	if rating != nil && (*rating < 1 || *rating > 5) {
		return util.ErrInvalidRating
	}

	title, _, err := s.ProjectSvc.ResolveTitle(email, projectTitle)
	if err != nil {
		return err
	}

	exists, err := s.QueryRepo.Exists(email, question, timestamp)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	return s.QueryRepo.Create(&model.Query{
		QueryID:        uuid.New().String(),
		Email:          email,
		Name:           name,
		ProjectTitle:   title,
		Question:       question,
		Response:       response,
		Timestamp:      timestamp,
		FeedbackRating: rating,
	})
}

// RateQuery attaches a 1–5 feedback rating to the (email, timestamp) row.
func (s *QueryService) RateQuery(email, timestamp string, rating int) error {
	if rating < 1 || rating > 5 {
		return util.ErrInvalidRating
	}
	rows, err := s.QueryRepo.UpdateRating(email, timestamp, rating)
	if err != nil {
		return err
	}
	if rows == 0 {
		return util.ErrQueryNotFound
	}
	return nil
}

// History pages through a student's past exchanges, newest first.
func (s *QueryService) History(email string, page, limit int) ([]model.Query, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 5
	}
	return s.QueryRepo.ListByEmail(email, page, limit)
}
