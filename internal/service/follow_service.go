package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// FollowService provides follow-graph business logic.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewFollowService returns a new FollowService.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow records that followerID follows followedID. Following yourself is
// rejected, following a missing user is NotFound, and following the same
// user twice is a Conflict.
func (s *FollowService) Follow(ctx context.Context, followerID, followedID uint) error {
	if followerID == followedID {
		return models.NewValidationError("Cannot follow yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, followedID); err != nil {
		return err
	}
	return s.followRepo.Create(ctx, &models.Follow{
		FollowerID:  followerID,
		FollowingID: followedID,
	})
}

// Unfollow removes an existing follow edge. Removing an edge that does not
// exist is NotFound so a repeated unfollow is visible to the caller.
func (s *FollowService) Unfollow(ctx context.Context, followerID, followedID uint) error {
	return s.followRepo.Delete(ctx, followerID, followedID)
}

// Followers lists the users following userID.
func (s *FollowService) Followers(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.Followers(ctx, userID, limit, offset)
}

// Following lists the users userID follows.
func (s *FollowService) Following(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.Following(ctx, userID, limit, offset)
}

// Counts returns follower and following totals for a user.
func (s *FollowService) Counts(ctx context.Context, userID uint) (int64, int64, error) {
	return s.followRepo.Counts(ctx, userID)
}
