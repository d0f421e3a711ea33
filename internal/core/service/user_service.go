package service

import (
	"context"
	"strings"
	"time"

	"github.com/martijn/skyboard/internal/core/domain"
	"github.com/martijn/skyboard/internal/core/repository"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// SetDefaultCity overwrites the user's main location. An empty city is
// rejected and leaves both the stored row and user untouched.
func (s *UserService) SetDefaultCity(ctx context.Context, user *domain.User, city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return domain.NewValidationError("main_location", "Please enter a city name")
	}

	updated := *user
	updated.MainLocation = city
	updated.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, &updated); err != nil {
		return err
	}

	*user = updated
	return nil
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.List(ctx)
}

func (s *UserService) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.userRepo.FindByUsername(ctx, username)
}
