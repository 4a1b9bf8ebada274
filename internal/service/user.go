package service

import (
	"context"

	"churchshare-backend/internal/domain"
	"churchshare-backend/internal/repository"
)

type userService struct {
	userRepo   repository.UserRepository
	churchRepo repository.ChurchRepository
}

func NewUserService(userRepo repository.UserRepository, churchRepo repository.ChurchRepository) UserService {
	return &userService{userRepo: userRepo, churchRepo: churchRepo}
}

// GetProfile returns the user along with their church, when they have
// one. A dangling church reference degrades to a nil church rather
// than failing the whole profile read.
func (s *userService) GetProfile(ctx context.Context, userID int32) (*domain.User, *domain.Church, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	var church *domain.Church
	if user.ChurchID != nil {
		if c, err := s.churchRepo.GetByID(ctx, *user.ChurchID); err == nil {
			church = c
		}
	}
	return user, church, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID int32, name, deviceToken string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if name != "" {
		user.Name = name
	}
	if deviceToken != "" {
		user.DeviceToken = deviceToken
	}
	return s.userRepo.Update(ctx, user)
}
