package service

import (
	"context"
	"errors"
	"testing"

	"anoa.com/fitquest/internal/entity"
	adminDto "anoa.com/fitquest/internal/modules/admin/dto"
	userRepo "anoa.com/fitquest/internal/modules/user/repository"
	"anoa.com/fitquest/internal/testutil"
	"anoa.com/fitquest/pkg/apperror"
	commonDto "anoa.com/fitquest/pkg/dto"
	"github.com/google/uuid"
)

func TestCreateUserKeepsProviderSubject(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewAdminService(userRepo.NewUserRepository(db), nil)
	ctx := context.Background()

	subject := uuid.New()
	user, err := svc.CreateUser(ctx, adminDto.CreateUserInput{ID: subject, Username: " jane doe "})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.ID != subject || user.Username != "jane_doe" || user.Role != entity.RoleMember {
		t.Errorf("user = %+v", user)
	}

	if _, err := svc.CreateUser(ctx, adminDto.CreateUserInput{Username: "jane_doe"}); !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("duplicate err = %v, want ErrConflict", err)
	}
	if _, err := svc.CreateUser(ctx, adminDto.CreateUserInput{Username: "x"}); !errors.Is(err, apperror.ErrInvalidInput) {
		t.Errorf("short username err = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.CreateUser(ctx, adminDto.CreateUserInput{Username: "root", Role: "owner"}); !errors.Is(err, apperror.ErrInvalidInput) {
		t.Errorf("bad role err = %v, want ErrInvalidInput", err)
	}
}

func TestListAndPromote(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewAdminService(userRepo.NewUserRepository(db), nil)
	ctx := context.Background()

	var last *entity.User
	for _, name := range []string{"alpha", "bravo", "charlie"} {
		last = testutil.CreateUser(t, db, name)
	}

	page, err := svc.GetAllUsers(ctx, commonDto.PaginationQuery{Page: 2, Limit: 2})
	if err != nil {
		t.Fatalf("GetAllUsers: %v", err)
	}
	if page.Total != 3 || len(page.Users) != 1 || page.Meta.CurrentPage != 2 {
		t.Errorf("page = %+v", page)
	}

	promoted, err := svc.UpdateUserRole(ctx, last.ID.String(), adminDto.UpdateRoleInput{Role: entity.RoleAdmin})
	if err != nil {
		t.Fatalf("UpdateUserRole: %v", err)
	}
	if !promoted.IsAdmin() {
		t.Error("user should be admin")
	}

	if _, err := svc.UpdateUserRole(ctx, uuid.NewString(), adminDto.UpdateRoleInput{Role: entity.RoleAdmin}); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("missing user err = %v, want ErrNotFound", err)
	}
}
