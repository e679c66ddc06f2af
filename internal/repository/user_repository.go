package repository

import (
	"kyra_advising_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

// Upsert is insert-or-replace keyed on email.
func (r *UserRepository) Upsert(user *model.User) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		UpdateAll: true,
	}).Create(user).Error
}

// CreateIfAbsent inserts unless the email already exists. Returns whether a
// row was actually written.
func (r *UserRepository) CreateIfAbsent(tx *gorm.DB, user *model.User) (bool, error) {
	res := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(user)
	return res.RowsAffected > 0, res.Error
}

// UpdateProfile changes name and role only, leaving the password hash
// untouched. Returns the number of rows matched.
func (r *UserRepository) UpdateProfile(email, name string, role model.UserRole) (int64, error) {
	res := r.DB.Model(&model.User{}).
		Where("email = ?", email).
		Updates(map[string]interface{}{"name": name, "role": role})
	return res.RowsAffected, res.Error
}

func (r *UserRepository) UpdatePassword(email, passwordHash string) (int64, error) {
	res := r.DB.Model(&model.User{}).
		Where("email = ?", email).
		Update("password_hash", passwordHash)
	return res.RowsAffected, res.Error
}

// DeleteCascade removes the user and every query, mapping and project row
// keyed by that email in one transaction. History rows in
// student_project_map are intentionally left behind.
func (r *UserRepository) DeleteCascade(email string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("email = ?", email).Delete(&model.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("student_email = ?", email).Delete(&model.StudentProjectMapping{}).Error; err != nil {
			return err
		}
		if err := tx.Where("email = ?", email).Delete(&model.Query{}).Error; err != nil {
			return err
		}
		return tx.Where("email = ?", email).Delete(&model.Project{}).Error
	})
}

func (r *UserRepository) ListStudents() ([]model.User, error) {
	var users []model.User
	err := r.DB.Where("role = ?", model.Student).Order("email").Find(&users).Error
	return users, err
}

func (r *UserRepository) CountStudents() (int64, error) {
	var count int64
	err := r.DB.Model(&model.User{}).
		Where("role = ?", model.Student).
		Distinct("email").
		Count(&count).Error
	return count, err
}
