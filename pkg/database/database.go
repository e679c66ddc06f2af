package database

import (
	"log"

	"kyra_advising_backend/internal/config"
	"kyra_advising_backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Default administrator seeded on first run. Insert-if-absent: re-running
// migration never overwrites a modified admin record.
const (
	DefaultAdminEmail = "admin@college.edu"
	DefaultAdminName  = "Jane Admin"
	DefaultPassword   = "default123"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")
	return db, nil
}

// Migrate creates any missing tables, adds missing expected columns to an
// existing users table (additive only, never drops or renames) and seeds the
// default admin. Idempotent: a second run is a no-op on existing data.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Project{},
		&model.Query{},
		&model.StudentProjectMapping{},
		&model.StudentProjectMap{},
	); err != nil {
		return err
	}

	// Legacy databases predate the password_hash column.
	m := db.Migrator()
	if !m.HasColumn(&model.User{}, "password_hash") {
		if err := m.AddColumn(&model.User{}, "PasswordHash"); err != nil {
			return err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	var admin model.User
	if err := db.Where(model.User{Email: DefaultAdminEmail}).
		Attrs(model.User{
			Name:         DefaultAdminName,
			Role:         model.Admin,
			PasswordHash: string(hash),
		}).
		FirstOrCreate(&admin).Error; err != nil {
		return err
	}

	log.Println("Database migration completed")
	return nil
}
