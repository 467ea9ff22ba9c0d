package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// User mirrors the identity provider's account. Only the seeder creates rows here.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username    string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	DisplayName *string   `gorm:"size:100" json:"display_name,omitempty"`
	AvatarURL   *string   `gorm:"type:text" json:"avatar_url,omitempty"`
	Role        string    `gorm:"size:20;not null" json:"role"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleMember
	}
	return nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
