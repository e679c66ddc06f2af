package service

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"kyra_advising_backend/internal/model"
	"kyra_advising_backend/internal/repository"
	"kyra_advising_backend/internal/util"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NoProjectAssigned is the sentinel stored when a query arrives for a
// student with no current mapping.
const NoProjectAssigned = "No Project Assigned"

type ProjectService struct {
	ProjectRepo *repository.ProjectRepository
	MappingRepo *repository.MappingRepository
	DB          *gorm.DB
}

func NewProjectService(projectRepo *repository.ProjectRepository, mappingRepo *repository.MappingRepository, db *gorm.DB) *ProjectService {
	return &ProjectService{
		ProjectRepo: projectRepo,
		MappingRepo: mappingRepo,
		DB:          db,
	}
}

// SaveProject records a submission: a new project row, a history map row
// and the replaced authoritative mapping, all-or-nothing.
func (s *ProjectService) SaveProject(email, title string) error {
	if !util.IsValidEmail(email) {
		return util.ErrInvalidEmail
	}

	timestamp := util.NowTimestamp()
	projectID := uuid.New().String()

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.ProjectRepo.Create(tx, &model.Project{
			ProjectID:    projectID,
			Email:        email,
			ProjectTitle: title,
			Timestamp:    timestamp,
		}); err != nil {
			return err
		}
		if err := s.MappingRepo.AppendHistory(tx, &model.StudentProjectMap{
			StudentID: email,
			ProjectID: projectID,
			Timestamp: timestamp,
		}); err != nil {
			return err
		}
		return s.MappingRepo.Upsert(tx, &model.StudentProjectMapping{
			StudentEmail:    email,
			ProjectTitle:    title,
			MappedTimestamp: timestamp,
		})
	})
}

// TitleForStudent returns the current mapping. assigned is false when the
// student has no mapping row.
func (s *ProjectService) TitleForStudent(email string) (title string, assigned bool, err error) {
	mapping, err := s.MappingRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return mapping.ProjectTitle, true, nil
}

// ResolveTitle applies the ordered fallback chain: explicit argument, then
// the mapping table, then the sentinel. defaulted reports whether the
// sentinel was used, so callers can tell "no project" from "omitted".
func (s *ProjectService) ResolveTitle(email, explicit string) (title string, defaulted bool, err error) {
	if explicit != "" {
		return explicit, false, nil
	}
	mapped, assigned, err := s.TitleForStudent(email)
	if err != nil {
		return "", false, err
	}
	if assigned {
		return mapped, false, nil
	}
	return NoProjectAssigned, true, nil
}

func (s *ProjectService) UserProjects(email string) ([]model.Project, error) {
	return s.ProjectRepo.ListByEmail(email)
}

func (s *ProjectService) AvailableProjects() ([]string, error) {
	return s.MappingRepo.DistinctTitles()
}

// ImportMappings bulk-loads student→project assignments from CSV bytes.
// The header must contain student_id and project_title; any missing value
// rejects the file; every student_id must be a valid email. Each row
// upserts the mapping and inserts a project row if absent. Returns the
// number of rows processed.
func (s *ProjectService) ImportMappings(csvBytes []byte) (int, error) {
	reader := csv.NewReader(bytes.NewReader(csvBytes))
	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("CSV must contain 'student_id' and 'project_title' columns")
	}

	idx := headerIndex(header)
	studentIdx, okS := idx["student_id"]
	titleIdx, okT := idx["project_title"]
	if !okS || !okT {
		return 0, fmt.Errorf("CSV must contain 'student_id' and 'project_title' columns")
	}

	type row struct {
		email string
		title string
	}
	var rows []row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("error processing mapping file: %w", err)
		}

		email := strings.TrimSpace(field(record, studentIdx))
		title := strings.TrimSpace(field(record, titleIdx))
		if email == "" || title == "" {
			return 0, fmt.Errorf("CSV contains missing values in required columns")
		}
		if !util.IsValidEmail(email) {
			return 0, fmt.Errorf("invalid email format: %s", email)
		}
		rows = append(rows, row{email: email, title: title})
	}

	if len(rows) == 0 {
		return 0, fmt.Errorf("CSV file is empty")
	}

	timestamp := util.NowTimestamp()
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		for _, r := range rows {
			if err := s.MappingRepo.Upsert(tx, &model.StudentProjectMapping{
				StudentEmail:    r.email,
				ProjectTitle:    r.title,
				MappedTimestamp: timestamp,
			}); err != nil {
				return err
			}
			if err := s.ProjectRepo.CreateIfAbsent(tx, &model.Project{
				ProjectID:    uuid.New().String(),
				Email:        r.email,
				ProjectTitle: r.title,
				Timestamp:    timestamp,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}
