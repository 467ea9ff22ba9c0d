package service

import (
	"context"
	"time"

	statDto "anoa.com/fitquest/internal/modules/stat/dto"
	statRepo "anoa.com/fitquest/internal/modules/stat/repository"
	"anoa.com/fitquest/pkg/cache"
)

const cacheKey = "stats:community"

type StatService interface {
	GetCommunityStats(ctx context.Context) (*statDto.CommunityStats, error)
}

type statService struct {
	repo  statRepo.StatRepository
	cache *cache.Cache
	ttl   time.Duration
	loc   *time.Location
	now   func() time.Time
}

func NewStatService(repo statRepo.StatRepository, cache *cache.Cache, ttl time.Duration, loc *time.Location) StatService {
	if loc == nil {
		loc = time.UTC
	}
	return &statService{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
		loc:   loc,
		now:   time.Now,
	}
}

func (s *statService) GetCommunityStats(ctx context.Context) (*statDto.CommunityStats, error) {
	var cached statDto.CommunityStats
	if s.cache.GetJSON(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	now := s.now().In(s.loc)
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)

	var stats statDto.CommunityStats
	steps := []struct {
		dst *int64
		fn  func() (int64, error)
	}{
		{&stats.TotalUsers, func() (int64, error) { return s.repo.CountUsers(ctx) }},
		{&stats.ActiveUsers, func() (int64, error) { return s.repo.CountActiveUsers(ctx) }},
		{&stats.PointsAwarded, func() (int64, error) { return s.repo.SumAwarded(ctx) }},
		{&stats.PointsRedeemed, func() (int64, error) { return s.repo.SumRedeemed(ctx) }},
		{&stats.ActivitiesToday, func() (int64, error) {
			return s.repo.CountActivitiesBetween(ctx, startOfDay, startOfDay.AddDate(0, 0, 1))
		}},
		{&stats.AchievementsEarned, func() (int64, error) { return s.repo.CountUnlocks(ctx) }},
	}
	for _, step := range steps {
		v, err := step.fn()
		if err != nil {
			return nil, err
		}
		*step.dst = v
	}

	s.cache.SetJSON(ctx, cacheKey, stats, s.ttl)
	return &stats, nil
}
