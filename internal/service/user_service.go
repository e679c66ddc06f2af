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

	"gorm.io/gorm"
)

// UserService covers account management: single saves, password resets,
// cascading deletes and the bulk CSV import.
type UserService struct {
	UserRepo *repository.UserRepository
	DB       *gorm.DB
}

func NewUserService(userRepo *repository.UserRepository, db *gorm.DB) *UserService {
	return &UserService{UserRepo: userRepo, DB: db}
}

// SaveUser upserts the full record when a password is given. Without one it
// updates name/role only; a missing target email is surfaced as
// ErrUserNotFound rather than the legacy silent no-op.
func (s *UserService) SaveUser(email, name, password string, role model.UserRole) error {
	if !util.IsValidEmail(email) {
		return util.ErrInvalidEmail
	}
	if role != model.Student && role != model.Admin {
		return util.ErrInvalidRole
	}

	if password != "" {
		hash, err := HashPassword(password)
		if err != nil {
			return err
		}
		return s.UserRepo.Upsert(&model.User{
			Email:        email,
			Name:         name,
			Role:         role,
			PasswordHash: hash,
		})
	}

	rows, err := s.UserRepo.UpdateProfile(email, name, role)
	if err != nil {
		return err
	}
	if rows == 0 {
		return util.ErrUserNotFound
	}
	return nil
}

func (s *UserService) ResetPassword(email, newPassword string) error {
	if !util.IsValidEmail(email) {
		return util.ErrInvalidEmail
	}
	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	rows, err := s.UserRepo.UpdatePassword(email, hash)
	if err != nil {
		return err
	}
	if rows == 0 {
		return util.ErrUserNotFound
	}
	return nil
}

func (s *UserService) DeleteUser(email string) error {
	err := s.UserRepo.DeleteCascade(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrUserNotFound
	}
	return err
}

func (s *UserService) ListStudents() ([]model.User, error) {
	return s.UserRepo.ListStudents()
}

// BulkRegister imports users from CSV bytes. The header must contain email,
// name and role columns; the first invalid row aborts the whole batch (one
// transaction, nothing persisted) naming the offending row. Valid rows are
// inserted if absent with the shared default password; the returned count
// excludes emails that already existed.
func (s *UserService) BulkRegister(csvBytes []byte, defaultPassword string) (int, error) {
	reader := csv.NewReader(bytes.NewReader(csvBytes))
	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("CSV must contain 'email', 'name', and 'role' columns")
	}

	idx := headerIndex(header)
	emailIdx, okE := idx["email"]
	nameIdx, okN := idx["name"]
	roleIdx, okR := idx["role"]
	if !okE || !okN || !okR {
		return 0, fmt.Errorf("CSV must contain 'email', 'name', and 'role' columns")
	}

	hash, err := HashPassword(defaultPassword)
	if err != nil {
		return 0, err
	}

	added := 0
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		for {
			record, err := reader.Read()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return fmt.Errorf("error processing CSV: %w", err)
			}

			email := strings.TrimSpace(field(record, emailIdx))
			name := strings.TrimSpace(field(record, nameIdx))
			role := strings.TrimSpace(field(record, roleIdx))

			if email == "" || name == "" || role == "" {
				return fmt.Errorf("missing data in row: %s", email)
			}
			if !util.IsValidEmail(email) {
				return fmt.Errorf("invalid email format: %s", email)
			}
			if role != string(model.Student) && role != string(model.Admin) {
				return fmt.Errorf("invalid role for %s: %s", email, role)
			}

			created, err := s.UserRepo.CreateIfAbsent(tx, &model.User{
				Email:        email,
				Name:         name,
				Role:         model.UserRole(role),
				PasswordHash: hash,
			})
			if err != nil {
				return err
			}
			if created {
				added++
			}
		}
	})
	if err != nil {
		return 0, err
	}
	return added, nil
}

func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(strings.ToLower(h))] = i
	}
	return idx
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}
