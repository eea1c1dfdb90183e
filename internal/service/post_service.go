package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

// PostInput carries the fields of a post create or update request.
type PostInput struct {
	Title      string
	Content    string
	CoverImage *string
	Tags       []string
}

// PostService provides post business logic, including author ownership
// checks on mutation.
type PostService struct {
	postRepo repository.PostRepository
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// CreatePost creates a post authored by authorID.
func (s *PostService) CreatePost(ctx context.Context, authorID uint, in PostInput) (*models.Post, error) {
	if err := validation.ValidateTitle(in.Title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	post := &models.Post{
		Title:      in.Title,
		Content:    in.Content,
		CoverImage: in.CoverImage,
		AuthorID:   authorID,
	}
	if err := s.postRepo.Create(ctx, post, in.Tags); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// GetPost returns a post with its author and tags.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// ListPosts returns a page of posts, newest first.
func (s *PostService) ListPosts(ctx context.Context, limit, offset int) ([]models.Post, error) {
	return s.postRepo.List(ctx, limit, offset)
}

// ListPostsByAuthor returns a page of one author's posts.
func (s *PostService) ListPostsByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]models.Post, error) {
	return s.postRepo.ListByAuthor(ctx, authorID, limit, offset)
}

// UpdatePost applies an update to a post the caller owns. Admins may edit
// any post.
func (s *PostService) UpdatePost(ctx context.Context, caller *models.User, postID uint, in PostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != caller.ID && !caller.IsAdmin() {
		return nil, models.NewForbiddenError("You can only edit your own posts")
	}

	if in.Title != "" {
		if err := validation.ValidateTitle(in.Title); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		post.Title = in.Title
	}
	if in.Content != "" {
		post.Content = in.Content
	}
	if in.CoverImage != nil {
		post.CoverImage = in.CoverImage
	}

	if err := s.postRepo.Update(ctx, post, in.Tags); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, postID)
}

// DeletePost removes a post the caller owns. Admins may delete any post.
func (s *PostService) DeletePost(ctx context.Context, caller *models.User, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != caller.ID && !caller.IsAdmin() {
		return models.NewForbiddenError("You can only delete your own posts")
	}
	return s.postRepo.Delete(ctx, postID)
}
