package service

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"kyra_advising_backend/internal/repository"
	"kyra_advising_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// DashboardStats summarizes portal activity for the admin landing view.
// AvgRating is nil when no query has been rated yet.
//
// swagger:model DashboardStats
type DashboardStats struct {
	TotalStudents int64    `json:"total_students"`
	TotalProjects int64    `json:"total_projects"`
	TotalQueries  int64    `json:"total_queries"`
	AvgRating     *float64 `json:"avg_rating"`
}

const (
	statsCacheKey = "dashboard:stats"
	statsCacheTTL = 60 * time.Second
)

type DashboardService struct {
	UserRepo    *repository.UserRepository
	MappingRepo *repository.MappingRepository
	QueryRepo   *repository.QueryRepository
	Redis       *redis.Client // optional; nil disables the cache
}

func NewDashboardService(userRepo *repository.UserRepository, mappingRepo *repository.MappingRepository, queryRepo *repository.QueryRepository, rdb *redis.Client) *DashboardService {
	return &DashboardService{
		UserRepo:    userRepo,
		MappingRepo: mappingRepo,
		QueryRepo:   queryRepo,
		Redis:       rdb,
	}
}

func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, statsCacheKey).Result(); err == nil {
			var stats DashboardStats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return &stats, nil
			}
		}
	}

	students, err := s.UserRepo.CountStudents()
	if err != nil {
		return nil, err
	}
	projects, err := s.MappingRepo.CountDistinctTitles()
	if err != nil {
		return nil, err
	}
	queries, err := s.QueryRepo.Count()
	if err != nil {
		return nil, err
	}
	avg, err := s.QueryRepo.AvgRating()
	if err != nil {
		return nil, err
	}
	if avg != nil {
		rounded := math.Round(*avg*100) / 100
		avg = &rounded
	}

	stats := &DashboardStats{
		TotalStudents: students,
		TotalProjects: projects,
		TotalQueries:  queries,
		AvgRating:     avg,
	}

	if s.Redis != nil {
		if encoded, err := json.Marshal(stats); err == nil {
			if err := s.Redis.Set(ctx, statsCacheKey, encoded, statsCacheTTL).Err(); err != nil {
				logger.Log.Warn("dashboard stats cache write failed", zap.Error(err))
			}
		}
	}

	return stats, nil
}
