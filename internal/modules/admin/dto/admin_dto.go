package dto

import (
	"anoa.com/fitquest/internal/entity"
	commonDto "anoa.com/fitquest/pkg/dto"
	"github.com/google/uuid"
)

// CreateUserInput provisions a local user. ID should be the identity
// provider's subject so issued tokens resolve to this row.
type CreateUserInput struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username" validate:"required,min=3,max=50"`
	DisplayName *string   `json:"display_name" validate:"omitempty,max=100"`
	AvatarURL   *string   `json:"avatar_url" validate:"omitempty,url,max=500"`
	Role        string    `json:"role" validate:"omitempty,oneof=member admin"`
}

type UpdateRoleInput struct {
	Role string `json:"role" validate:"required,oneof=member admin"`
}

type UserListResponse struct {
	Users []entity.User            `json:"users"`
	Total int64                    `json:"total"`
	Meta  commonDto.PaginationMeta `json:"meta"`
}
