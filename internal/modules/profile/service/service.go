package service

import (
	"context"
	"errors"
	"html"
	"strings"

	"anoa.com/fitquest/internal/entity"
	achievementService "anoa.com/fitquest/internal/modules/achievement/service"
	leaderboardService "anoa.com/fitquest/internal/modules/leaderboard/service"
	pointsRepo "anoa.com/fitquest/internal/modules/points/repository"
	profileDto "anoa.com/fitquest/internal/modules/profile/dto"
	userRepo "anoa.com/fitquest/internal/modules/user/repository"
	"anoa.com/fitquest/pkg/apperror"
	"anoa.com/fitquest/pkg/validator"
	"github.com/microcosm-cc/bluemonday"
)

type ProfileService interface {
	GetProfileByUsername(ctx context.Context, username string) (*profileDto.ProfileResponse, error)
	GetCurrentProfile(ctx context.Context, userID string) (*profileDto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID string, input profileDto.UpdateProfileInput) (*profileDto.ProfileResponse, error)
}

type profileService struct {
	repo               userRepo.UserRepository
	pointsRepo         pointsRepo.PointsRepository
	achievementService achievementService.AchievementService
	sanitizer          *bluemonday.Policy
}

func NewProfileService(repo userRepo.UserRepository, pointsRepo pointsRepo.PointsRepository, achievementService achievementService.AchievementService) ProfileService {
	return &profileService{
		repo:               repo,
		pointsRepo:         pointsRepo,
		achievementService: achievementService,
		sanitizer:          bluemonday.StrictPolicy(),
	}
}

func (s *profileService) GetProfileByUsername(ctx context.Context, username string) (*profileDto.ProfileResponse, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.buildProfile(ctx, user)
}

func (s *profileService) GetCurrentProfile(ctx context.Context, userID string) (*profileDto.ProfileResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.buildProfile(ctx, user)
}

func (s *profileService) UpdateProfile(ctx context.Context, userID string, input profileDto.UpdateProfileInput) (*profileDto.ProfileResponse, error) {
	if input.DisplayName != nil {
		name := strings.TrimSpace(html.UnescapeString(s.sanitizer.Sanitize(*input.DisplayName)))
		input.DisplayName = &name
	}
	if err := validator.Struct(input); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != nil {
		user.DisplayName = input.DisplayName
	}
	if input.AvatarURL != nil {
		user.AvatarURL = normalizeOptional(input.AvatarURL)
	}

	if err := s.repo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return s.buildProfile(ctx, user)
}

func (s *profileService) buildProfile(ctx context.Context, user *entity.User) (*profileDto.ProfileResponse, error) {
	resp := &profileDto.ProfileResponse{
		User:               user,
		GamificationStatus: leaderboardService.GetGamificationStatus(1, 0, 0),
	}

	stats, err := s.pointsRepo.FindStats(ctx, user.ID)
	switch {
	case err == nil:
		resp.Stats = stats
		resp.GamificationStatus = leaderboardService.GetGamificationStatus(stats.Level, stats.TotalPoints, stats.WeeklyPoints)
	case !errors.Is(err, apperror.ErrUserPointsNotFound):
		return nil, err
	}

	achievements, err := s.achievementService.GetUserAchievements(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	resp.AchievementsTotal = len(achievements)
	for _, a := range achievements {
		if a.Unlocked {
			resp.AchievementsUnlocked++
		}
	}

	return resp, nil
}

func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
