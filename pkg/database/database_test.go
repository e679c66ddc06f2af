package database

import (
	"path/filepath"
	"testing"

	"kyra_advising_backend/internal/config"
	"kyra_advising_backend/internal/model"

	"golang.org/x/crypto/bcrypt"
)

func TestMigrateSeedsDefaultAdmin(t *testing.T) {
	cfg := &config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "test.db")}
	db, err := InitDB(cfg)
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	var admin model.User
	if err := db.Where("email = ?", DefaultAdminEmail).First(&admin).Error; err != nil {
		t.Fatalf("admin not seeded: %v", err)
	}
	if admin.Name != DefaultAdminName || admin.Role != model.Admin {
		t.Errorf("unexpected admin record: %+v", admin)
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(DefaultPassword)) != nil {
		t.Error("admin password hash does not match the default password")
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	cfg := &config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "test.db")}
	db, err := InitDB(cfg)
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}

	if err := Migrate(db); err != nil {
		t.Fatalf("first Migrate: %v", err)
	}

	// Modify the admin, then migrate again: insert-if-absent must not
	// overwrite existing data.
	if err := db.Model(&model.User{}).
		Where("email = ?", DefaultAdminEmail).
		Updates(map[string]interface{}{"name": "Renamed Admin", "password_hash": "custom-hash"}).Error; err != nil {
		t.Fatalf("update admin: %v", err)
	}

	if err := Migrate(db); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}

	var count int64
	db.Model(&model.User{}).Where("email = ?", DefaultAdminEmail).Count(&count)
	if count != 1 {
		t.Errorf("expected exactly one admin row, got %d", count)
	}

	var admin model.User
	if err := db.Where("email = ?", DefaultAdminEmail).First(&admin).Error; err != nil {
		t.Fatalf("load admin: %v", err)
	}
	if admin.Name != "Renamed Admin" || admin.PasswordHash != "custom-hash" {
		t.Errorf("re-migration overwrote existing admin: %+v", admin)
	}
}
