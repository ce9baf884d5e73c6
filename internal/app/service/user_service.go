package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"taskhub/internal/common"
	"taskhub/internal/domain/model"
	"taskhub/internal/domain/repository"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

type UpdateProfileRequest struct {
	Name  string `json:"name" validate:"omitempty,min=2"`
	Email string `json:"email" validate:"omitempty,email"`
}

func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].HashedPassword = ""
	}
	return users, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.HashedPassword = ""
	return user, nil
}

// UpdateProfile merges optional name/email. An empty field means "leave
// unchanged"; fields cannot be cleared through this operation.
func (s *UserService) UpdateProfile(ctx context.Context, requester *model.User, req UpdateProfileRequest) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, requester.ID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		if len(name) < 2 {
			return nil, fmt.Errorf("name must be at least 2 characters: %w", common.ErrValidation)
		}
		user.Name = name
	}

	if email := NormalizeEmail(req.Email); email != "" && email != user.Email {
		if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
			return nil, fmt.Errorf("email already in use: %w", common.ErrConflict)
		} else if !errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		user.Email = email
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	user.HashedPassword = ""
	return user, nil
}
