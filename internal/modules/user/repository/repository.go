package repository

import (
	"context"
	"errors"

	"anoa.com/fitquest/internal/entity"
	"anoa.com/fitquest/pkg/apperror"
	"anoa.com/fitquest/pkg/database"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	UpdateProfile(ctx context.Context, user *entity.User) error
	UpdateRole(ctx context.Context, id uuid.UUID, role string) error
	List(ctx context.Context, limit, offset int) ([]entity.User, error)
	Count(ctx context.Context) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return database.Conn(ctx, r.db).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.ErrInvalidInput
	}

	var user entity.User
	if err := database.Conn(ctx, r.db).Where("id = ?", uid).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []entity.User
	err := database.Conn(ctx, r.db).Where("id IN ?", ids).Find(&users).Error
	return users, err
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var user entity.User
	if err := database.Conn(ctx, r.db).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile persists the user's presentation fields only.
func (r *userRepository) UpdateProfile(ctx context.Context, user *entity.User) error {
	return database.Conn(ctx, r.db).Model(user).
		Select("display_name", "avatar_url").
		Updates(map[string]any{"display_name": user.DisplayName, "avatar_url": user.AvatarURL}).Error
}

func (r *userRepository) UpdateRole(ctx context.Context, id uuid.UUID, role string) error {
	res := database.Conn(ctx, r.db).Model(&entity.User{}).Where("id = ?", id).Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]entity.User, error) {
	var users []entity.User
	err := database.Conn(ctx, r.db).
		Order("created_at ASC, id ASC").
		Limit(limit).Offset(offset).
		Find(&users).Error
	return users, err
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := database.Conn(ctx, r.db).Model(&entity.User{}).Count(&count).Error
	return count, err
}
