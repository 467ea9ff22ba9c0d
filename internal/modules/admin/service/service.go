package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"anoa.com/fitquest/internal/entity"
	adminDto "anoa.com/fitquest/internal/modules/admin/dto"
	userRepo "anoa.com/fitquest/internal/modules/user/repository"
	"anoa.com/fitquest/pkg/apperror"
	commonDto "anoa.com/fitquest/pkg/dto"
	"anoa.com/fitquest/pkg/validator"
	"go.uber.org/zap"
)

var ErrUsernameTaken = fmt.Errorf("username already taken: %w", apperror.ErrConflict)

type AdminService interface {
	CreateUser(ctx context.Context, input adminDto.CreateUserInput) (*entity.User, error)
	GetAllUsers(ctx context.Context, query commonDto.PaginationQuery) (*adminDto.UserListResponse, error)
	UpdateUserRole(ctx context.Context, id string, input adminDto.UpdateRoleInput) (*entity.User, error)
}

type adminService struct {
	userRepo userRepo.UserRepository
	log      *zap.Logger
}

func NewAdminService(userRepo userRepo.UserRepository, log *zap.Logger) AdminService {
	if log == nil {
		log = zap.NewNop()
	}
	return &adminService{
		userRepo: userRepo,
		log:      log,
	}
}

func (s *adminService) CreateUser(ctx context.Context, input adminDto.CreateUserInput) (*entity.User, error) {
	input.Username = strings.ReplaceAll(strings.TrimSpace(input.Username), " ", "_")
	if err := validator.Struct(input); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByUsername(ctx, input.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}

	user := &entity.User{
		ID:          input.ID,
		Username:    input.Username,
		DisplayName: input.DisplayName,
		AvatarURL:   input.AvatarURL,
		Role:        input.Role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("user provisioned", zap.String("user_id", user.ID.String()), zap.String("role", user.Role))
	return user, nil
}

func (s *adminService) GetAllUsers(ctx context.Context, query commonDto.PaginationQuery) (*adminDto.UserListResponse, error) {
	limit, offset := query.Normalize()

	users, err := s.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &adminDto.UserListResponse{
		Users: users,
		Total: total,
		Meta: commonDto.PaginationMeta{
			CurrentPage: offset/limit + 1,
			Limit:       limit,
			Count:       len(users),
		},
	}, nil
}

func (s *adminService) UpdateUserRole(ctx context.Context, id string, input adminDto.UpdateRoleInput) (*entity.User, error) {
	if err := validator.Struct(input); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateRole(ctx, user.ID, input.Role); err != nil {
		return nil, err
	}

	user.Role = input.Role
	s.log.Info("user role changed", zap.String("user_id", user.ID.String()), zap.String("role", user.Role))
	return user, nil
}
