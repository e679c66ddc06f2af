package service

import (
	"context"
	"fmt"
	"testing"

	"kyra_advising_backend/internal/model"
	"kyra_advising_backend/internal/repository"
)

func TestDashboardStats(t *testing.T) {
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	userSvc := NewUserService(userRepo, db)
	projectSvc := newTestProjectService(db)
	querySvc := newTestQueryService(db)
	svc := NewDashboardService(userRepo, repository.NewMappingRepository(db), repository.NewQueryRepository(db), nil)

	for i := 1; i <= 3; i++ {
		email := fmt.Sprintf("s%d@college.edu", i)
		if err := userSvc.SaveUser(email, fmt.Sprintf("Student %d", i), "pw", model.Student); err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}
	// An admin account must not count as a student.
	if err := userSvc.SaveUser("dean@college.edu", "Dean", "pw", model.Admin); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	if err := projectSvc.SaveProject("s1@college.edu", "Greenhouse"); err != nil {
		t.Fatalf("seed project: %v", err)
	}
	if err := projectSvc.SaveProject("s2@college.edu", "Greenhouse"); err != nil {
		t.Fatalf("seed project: %v", err)
	}
	if err := projectSvc.SaveProject("s3@college.edu", "Weather Balloon"); err != nil {
		t.Fatalf("seed project: %v", err)
	}

	ratings := []*int{intPtr(5), intPtr(4), intPtr(3), intPtr(2), nil, nil, nil, nil, nil, nil}
	for i, r := range ratings {
		ts := fmt.Sprintf("2025-06-10 08:%02d:00", i)
		if err := querySvc.SaveQuery("s1@college.edu", "Student 1", "", fmt.Sprintf("Q%d", i), "A", ts, r); err != nil {
			t.Fatalf("seed query: %v", err)
		}
	}

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalStudents != 3 {
		t.Errorf("TotalStudents = %d, want 3", stats.TotalStudents)
	}
	if stats.TotalProjects != 2 {
		t.Errorf("TotalProjects = %d, want 2", stats.TotalProjects)
	}
	if stats.TotalQueries != 10 {
		t.Errorf("TotalQueries = %d, want 10", stats.TotalQueries)
	}
	if stats.AvgRating == nil || *stats.AvgRating != 3.5 {
		t.Errorf("AvgRating = %v, want 3.5", stats.AvgRating)
	}
}

func TestDashboardStatsNoRatings(t *testing.T) {
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	svc := NewDashboardService(userRepo, repository.NewMappingRepository(db), repository.NewQueryRepository(db), nil)

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalStudents != 0 || stats.TotalQueries != 0 {
		t.Errorf("expected zero counts, got %+v", stats)
	}
	if stats.AvgRating != nil {
		t.Errorf("AvgRating should be nil with no rated queries, got %v", *stats.AvgRating)
	}
}
