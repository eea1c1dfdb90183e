package service

import (
	"context"
	"errors"
	"testing"

	"inkwell/internal/models"
)

type followRepoStub struct {
	createFn    func(context.Context, *models.Follow) error
	deleteFn    func(context.Context, uint, uint) error
	existsFn    func(context.Context, uint, uint) (bool, error)
	followersFn func(context.Context, uint, int, int) ([]models.User, error)
	followingFn func(context.Context, uint, int, int) ([]models.User, error)
	countsFn    func(context.Context, uint) (int64, int64, error)
}

func (s *followRepoStub) Create(ctx context.Context, follow *models.Follow) error {
	return s.createFn(ctx, follow)
}
func (s *followRepoStub) Delete(ctx context.Context, followerID, followingID uint) error {
	return s.deleteFn(ctx, followerID, followingID)
}
func (s *followRepoStub) Exists(ctx context.Context, followerID, followingID uint) (bool, error) {
	return s.existsFn(ctx, followerID, followingID)
}
func (s *followRepoStub) Followers(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	return s.followersFn(ctx, userID, limit, offset)
}
func (s *followRepoStub) Following(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	return s.followingFn(ctx, userID, limit, offset)
}
func (s *followRepoStub) Counts(ctx context.Context, userID uint) (int64, int64, error) {
	return s.countsFn(ctx, userID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		createFn:    func(context.Context, *models.Follow) error { return nil },
		deleteFn:    func(context.Context, uint, uint) error { return nil },
		existsFn:    func(context.Context, uint, uint) (bool, error) { return false, nil },
		followersFn: func(context.Context, uint, int, int) ([]models.User, error) { return nil, nil },
		followingFn: func(context.Context, uint, int, int) ([]models.User, error) { return nil, nil },
		countsFn:    func(context.Context, uint) (int64, int64, error) { return 0, 0, nil },
	}
}

func TestFollowServiceFollowSelf(t *testing.T) {
	svc := NewFollowService(noopFollowRepo(), noopUserRepo())
	err := svc.Follow(context.Background(), 3, 3)
	if err == nil {
		t.Fatal("expected validation error")
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected validation app error, got %#v", err)
	}
}

func TestFollowServiceFollowMissingTarget(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}

	svc := NewFollowService(noopFollowRepo(), users)
	err := svc.Follow(context.Background(), 1, 99)
	if !models.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %#v", err)
	}
}

func TestFollowServiceDuplicateFollow(t *testing.T) {
	repo := noopFollowRepo()
	repo.createFn = func(context.Context, *models.Follow) error {
		return models.NewConflictError("Already following this user")
	}

	svc := NewFollowService(repo, noopUserRepo())
	err := svc.Follow(context.Background(), 1, 2)
	if !models.IsConflict(err) {
		t.Fatalf("expected conflict error, got %#v", err)
	}
}

func TestFollowServiceUnfollowMissingEdge(t *testing.T) {
	repo := noopFollowRepo()
	repo.deleteFn = func(_ context.Context, _, followingID uint) error {
		return models.NewNotFoundError("Follow", followingID)
	}

	svc := NewFollowService(repo, noopUserRepo())
	err := svc.Unfollow(context.Background(), 1, 2)
	if !models.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %#v", err)
	}
}

func TestFollowServiceFollowRecordsEdge(t *testing.T) {
	var recorded *models.Follow
	repo := noopFollowRepo()
	repo.createFn = func(_ context.Context, f *models.Follow) error {
		recorded = f
		return nil
	}

	svc := NewFollowService(repo, noopUserRepo())
	if err := svc.Follow(context.Background(), 1, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recorded == nil || recorded.FollowerID != 1 || recorded.FollowingID != 2 {
		t.Fatalf("expected follow edge 1->2, got %#v", recorded)
	}
}
