package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// BookmarkService provides bookmark business logic.
type BookmarkService struct {
	bookmarkRepo repository.BookmarkRepository
	postRepo     repository.PostRepository
}

// NewBookmarkService returns a new BookmarkService.
func NewBookmarkService(bookmarkRepo repository.BookmarkRepository, postRepo repository.PostRepository) *BookmarkService {
	return &BookmarkService{
		bookmarkRepo: bookmarkRepo,
		postRepo:     postRepo,
	}
}

// Add bookmarks a post for a user. Bookmarking a missing post is NotFound
// and bookmarking the same post twice is a Conflict.
func (s *BookmarkService) Add(ctx context.Context, userID, postID uint) error {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return err
	}
	return s.bookmarkRepo.Create(ctx, &models.Bookmark{
		UserID: userID,
		PostID: postID,
	})
}

// Remove deletes a bookmark. Removing a bookmark that does not exist is
// NotFound.
func (s *BookmarkService) Remove(ctx context.Context, userID, postID uint) error {
	return s.bookmarkRepo.Delete(ctx, userID, postID)
}

// List returns a user's bookmarks with the bookmarked posts preloaded.
func (s *BookmarkService) List(ctx context.Context, userID uint, limit, offset int) ([]models.Bookmark, error) {
	return s.bookmarkRepo.ListByUser(ctx, userID, limit, offset)
}
