package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/oreumshop/commerce-api/internal/dto"
	"github.com/oreumshop/commerce-api/internal/entity"
	"github.com/oreumshop/commerce-api/internal/repository"
	"github.com/oreumshop/commerce-api/pkg/apperror"
)

// AdminService is the staff-only user management surface.
type AdminService interface {
	CreateUser(ctx context.Context, input dto.AdminCreateUserInput) (*entity.User, error)
	ListUsers(ctx context.Context, filter dto.UserFilter) ([]*entity.User, int64, error)
	UpdateUser(ctx context.Context, id uuid.UUID, input dto.AdminUpdateUserInput) (*entity.User, error)
	DeactivateUser(ctx context.Context, id uuid.UUID) error
}

type adminService struct {
	repo repository.UserRepository
}

func NewAdminService(repo repository.UserRepository) AdminService {
	return &adminService{repo: repo}
}

func (s *adminService) CreateUser(ctx context.Context, input dto.AdminCreateUserInput) (*entity.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Email:        input.Email,
		Nickname:     input.Nickname,
		PasswordHash: string(hashed),
		IsActive:     true,
		IsStaff:      input.IsStaff,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.BadRequest("an account with this email already exists")
		}
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *adminService) ListUsers(ctx context.Context, filter dto.UserFilter) ([]*entity.User, int64, error) {
	users, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	for _, u := range users {
		u.PasswordHash = ""
	}
	return users, total, nil
}

func (s *adminService) UpdateUser(ctx context.Context, id uuid.UUID, input dto.AdminUpdateUserInput) (*entity.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}

	if input.Nickname != nil {
		user.Nickname = *input.Nickname
	}
	if input.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hashed)
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.IsStaff != nil {
		user.IsStaff = *input.IsStaff
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *adminService) DeactivateUser(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("user not found")
		}
		return err
	}
	return s.repo.Deactivate(ctx, id)
}
