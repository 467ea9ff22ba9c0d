package service

import (
	"context"
	"fmt"
	"time"

	"anoa.com/fitquest/internal/entity"
	leaderboardDto "anoa.com/fitquest/internal/modules/leaderboard/dto"
	leaderboardRepo "anoa.com/fitquest/internal/modules/leaderboard/repository"
	userRepo "anoa.com/fitquest/internal/modules/user/repository"
	"anoa.com/fitquest/pkg/apperror"
	"anoa.com/fitquest/pkg/cache"
	"github.com/google/uuid"
)

const (
	TimeframeWeekly  = "weekly"
	TimeframeMonthly = "monthly"
	TimeframeAllTime = "all_time"

	DefaultLimit = 10
	cachePrefix  = "leaderboard:"
)

type LeaderboardService interface {
	GetLeaderboard(ctx context.Context, timeframe string, limit int) (*leaderboardDto.LeaderboardResponse, error)
	InvalidateCache(ctx context.Context)
}

type leaderboardService struct {
	repo     leaderboardRepo.LeaderboardRepository
	userRepo userRepo.UserRepository
	cache    *cache.Cache
	cacheTTL time.Duration
}

func NewLeaderboardService(repo leaderboardRepo.LeaderboardRepository, userRepo userRepo.UserRepository, cache *cache.Cache, cacheTTL time.Duration) LeaderboardService {
	return &leaderboardService{
		repo:     repo,
		userRepo: userRepo,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// NormalizeTimeframe maps accepted spellings to a canonical timeframe.
func NormalizeTimeframe(timeframe string) (string, error) {
	switch timeframe {
	case "", TimeframeAllTime, "allTime":
		return TimeframeAllTime, nil
	case TimeframeWeekly, TimeframeMonthly:
		return timeframe, nil
	}
	return "", fmt.Errorf("%w: unknown timeframe %q", apperror.ErrInvalidInput, timeframe)
}

func (s *leaderboardService) GetLeaderboard(ctx context.Context, timeframe string, limit int) (*leaderboardDto.LeaderboardResponse, error) {
	timeframe, err := NormalizeTimeframe(timeframe)
	if err != nil {
		return nil, err
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	key := fmt.Sprintf("%s%s:%d", cachePrefix, timeframe, limit)
	var cached leaderboardDto.LeaderboardResponse
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	column := leaderboardRepo.ColumnTotal
	switch timeframe {
	case TimeframeWeekly:
		column = leaderboardRepo.ColumnWeekly
	case TimeframeMonthly:
		column = leaderboardRepo.ColumnMonthly
	}

	stats, err := s.repo.GetTopUsers(ctx, column, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(stats))
	for _, st := range stats {
		ids = append(ids, st.UserID)
	}
	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	userMap := make(map[uuid.UUID]entity.User, len(users))
	for _, u := range users {
		userMap[u.ID] = u
	}

	resp := &leaderboardDto.LeaderboardResponse{
		Timeframe: timeframe,
		Entries:   make([]leaderboardDto.LeaderboardEntry, 0, len(stats)),
	}
	for i, st := range stats {
		points := st.TotalPoints
		switch timeframe {
		case TimeframeWeekly:
			points = st.WeeklyPoints
		case TimeframeMonthly:
			points = st.MonthlyPoints
		}

		user, found := userMap[st.UserID]
		entry := leaderboardDto.LeaderboardEntry{
			UserID:             st.UserID,
			DisplayName:        DisplayName(st.UserID, user, found),
			Position:           i + 1, // 1-based position
			Points:             points,
			GamificationStatus: GetGamificationStatus(st.Level, st.TotalPoints, st.WeeklyPoints),
		}
		if found {
			entry.AvatarURL = user.AvatarURL
		}
		resp.Entries = append(resp.Entries, entry)
	}

	s.cache.SetJSON(ctx, key, resp, s.cacheTTL)
	return resp, nil
}

func (s *leaderboardService) InvalidateCache(ctx context.Context) {
	s.cache.InvalidatePrefix(ctx, cachePrefix)
}

// DisplayName prefers the display name, then the username, then a short id label.
func DisplayName(id uuid.UUID, user entity.User, found bool) string {
	if found {
		if user.DisplayName != nil && *user.DisplayName != "" {
			return *user.DisplayName
		}
		if user.Username != "" {
			return user.Username
		}
	}
	return "Athlete " + id.String()[:8]
}
