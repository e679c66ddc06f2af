package service

import (
	"errors"
	"strings"
	"testing"

	"kyra_advising_backend/internal/model"
	"kyra_advising_backend/internal/repository"
	"kyra_advising_backend/internal/util"
)

func newTestUserService(t *testing.T) (*UserService, *repository.UserRepository) {
	t.Helper()
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	return NewUserService(userRepo, db), userRepo
}

func TestSaveUserUpsert(t *testing.T) {
	svc, userRepo := newTestUserService(t)

	if err := svc.SaveUser("bob@college.edu", "Bob", "pw1", model.Student); err != nil {
		t.Fatalf("SaveUser insert: %v", err)
	}

	// Full save with password replaces every field.
	if err := svc.SaveUser("bob@college.edu", "Robert", "pw2", model.Admin); err != nil {
		t.Fatalf("SaveUser replace: %v", err)
	}
	user, err := userRepo.FindByEmail("bob@college.edu")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if user.Name != "Robert" || user.Role != model.Admin {
		t.Errorf("upsert did not replace fields: %+v", user)
	}
	if !VerifyPassword("pw2", user.PasswordHash) {
		t.Error("password not replaced")
	}

	// Passwordless save updates name/role and leaves the hash alone.
	if err := svc.SaveUser("bob@college.edu", "Bobby", "", model.Student); err != nil {
		t.Fatalf("SaveUser profile update: %v", err)
	}
	user, err = userRepo.FindByEmail("bob@college.edu")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if user.Name != "Bobby" || user.Role != model.Student {
		t.Errorf("profile update missed fields: %+v", user)
	}
	if !VerifyPassword("pw2", user.PasswordHash) {
		t.Error("profile update must not change the password")
	}
}

func TestSaveUserValidation(t *testing.T) {
	svc, _ := newTestUserService(t)

	if err := svc.SaveUser("not-an-email", "X", "pw", model.Student); !errors.Is(err, util.ErrInvalidEmail) {
		t.Errorf("expected ErrInvalidEmail, got %v", err)
	}
	if err := svc.SaveUser("x@college.edu", "X", "pw", model.UserRole("teacher")); !errors.Is(err, util.ErrInvalidRole) {
		t.Errorf("expected ErrInvalidRole, got %v", err)
	}
	// Passwordless update of a missing user is surfaced, not swallowed.
	if err := svc.SaveUser("ghost@college.edu", "Ghost", "", model.Student); !errors.Is(err, util.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestResetPassword(t *testing.T) {
	svc, userRepo := newTestUserService(t)

	if err := svc.SaveUser("carol@college.edu", "Carol", "old", model.Student); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := svc.ResetPassword("carol@college.edu", "brand-new"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	user, err := userRepo.FindByEmail("carol@college.edu")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if !VerifyPassword("brand-new", user.PasswordHash) {
		t.Error("new password not stored")
	}

	if err := svc.ResetPassword("ghost@college.edu", "whatever"); !errors.Is(err, util.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestDeleteUserCascade(t *testing.T) {
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	userSvc := NewUserService(userRepo, db)
	projectSvc := newTestProjectService(db)
	querySvc := NewQueryService(repository.NewQueryRepository(db), projectSvc)

	if err := userSvc.SaveUser("dave@college.edu", "Dave", "pw", model.Student); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	if err := projectSvc.SaveProject("dave@college.edu", "Robotics"); err != nil {
		t.Fatalf("seed project: %v", err)
	}
	if err := querySvc.SaveQuery("dave@college.edu", "Dave", "", "How do I start?", "Start small.", util.NowTimestamp(), nil); err != nil {
		t.Fatalf("seed query: %v", err)
	}

	if err := userSvc.DeleteUser("dave@college.edu"); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	var users, projects, queries, mappings int64
	db.Model(&model.User{}).Where("email = ?", "dave@college.edu").Count(&users)
	db.Model(&model.Project{}).Where("email = ?", "dave@college.edu").Count(&projects)
	db.Model(&model.Query{}).Where("email = ?", "dave@college.edu").Count(&queries)
	db.Model(&model.StudentProjectMapping{}).Where("student_email = ?", "dave@college.edu").Count(&mappings)
	if users != 0 || projects != 0 || queries != 0 || mappings != 0 {
		t.Errorf("cascade left rows behind: users=%d projects=%d queries=%d mappings=%d",
			users, projects, queries, mappings)
	}

	if err := userSvc.DeleteUser("dave@college.edu"); !errors.Is(err, util.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound on second delete, got %v", err)
	}
}

func TestBulkRegister(t *testing.T) {
	svc, userRepo := newTestUserService(t)

	if err := svc.SaveUser("existing@college.edu", "Already Here", "pw", model.Student); err != nil {
		t.Fatalf("seed: %v", err)
	}

	csv := strings.Join([]string{
		"email,name,role",
		"alice@college.edu,Alice,student",
		"existing@college.edu,Already Here,student",
		"boss@college.edu,Boss,admin",
	}, "\n")

	added, err := svc.BulkRegister([]byte(csv), "default123")
	if err != nil {
		t.Fatalf("BulkRegister: %v", err)
	}
	if added != 2 {
		t.Errorf("expected 2 new users, got %d", added)
	}

	alice, err := userRepo.FindByEmail("alice@college.edu")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if !VerifyPassword("default123", alice.PasswordHash) {
		t.Error("imported user did not get the default password")
	}
}

func TestBulkRegisterAbortsOnBadRow(t *testing.T) {
	svc, userRepo := newTestUserService(t)

	csv := strings.Join([]string{
		"email,name,role",
		"good@college.edu,Good,student",
		"bad-email,Broken,student",
	}, "\n")

	if _, err := svc.BulkRegister([]byte(csv), "default123"); err == nil {
		t.Fatal("expected error for invalid email row")
	}

	// All-or-nothing: the valid row before the bad one is rolled back.
	if _, err := userRepo.FindByEmail("good@college.edu"); err == nil {
		t.Error("row before the invalid one must not be persisted")
	}
}

func TestBulkRegisterHeaderValidation(t *testing.T) {
	svc, _ := newTestUserService(t)

	if _, err := svc.BulkRegister([]byte("email,name\nx@college.edu,X"), "pw"); err == nil {
		t.Error("expected error for missing role column")
	}
	if _, err := svc.BulkRegister([]byte(""), "pw"); err == nil {
		t.Error("expected error for empty file")
	}
}
