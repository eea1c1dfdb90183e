package service

import (
	"context"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

// ProfileUpdate carries the optional fields of a profile update. Nil
// pointers leave the stored value untouched.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Mobile    *string
	Gender    *string
	BirthDate *time.Time
	Avatar    *string
}

// UserService provides account and profile business logic.
type UserService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository, followRepo repository.FollowRepository) *UserService {
	return &UserService{
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

// GetUser returns a user with their profile loaded.
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByIDWithProfile(ctx, id)
}

// UpdateProfile applies a partial update to the user's profile.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, update ProfileUpdate) (*models.User, error) {
	user, err := s.userRepo.GetByIDWithProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Profile == nil {
		user.Profile = &models.Profile{UserID: userID}
	}

	if update.FirstName != nil {
		if err := validation.ValidateName(*update.FirstName); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Profile.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.Profile.LastName = update.LastName
	}
	if update.Mobile != nil {
		user.Profile.Mobile = update.Mobile
	}
	if update.Gender != nil {
		user.Profile.Gender = update.Gender
	}
	if update.BirthDate != nil {
		user.Profile.BirthDate = update.BirthDate
	}

	if err := s.userRepo.UpdateProfile(ctx, user.Profile); err != nil {
		return nil, err
	}

	if update.Avatar != nil {
		user.Avatar = update.Avatar
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	return user, nil
}

// DeleteUser removes a user and everything that hangs off them.
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	return s.userRepo.Delete(ctx, id)
}

// ListUsers returns a page of users.
func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}
