package service

import (
	"fmt"
	"testing"

	"kyra_advising_backend/internal/model"
	"kyra_advising_backend/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory database migrated with the full
// schema. The named shared-cache DSN keeps gorm's pooled connections on
// the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Project{},
		&model.Query{},
		&model.StudentProjectMapping{},
		&model.StudentProjectMap{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func newTestProjectService(db *gorm.DB) *ProjectService {
	return NewProjectService(
		repository.NewProjectRepository(db),
		repository.NewMappingRepository(db),
		db,
	)
}

func newTestQueryService(db *gorm.DB) *QueryService {
	return NewQueryService(repository.NewQueryRepository(db), newTestProjectService(db))
}

func intPtr(v int) *int { return &v }
