package server

import (
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AddBookmark handles POST /api/posts/:id/bookmark
// @Summary Bookmark a post
// @Tags bookmarks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 201 {object} models.Envelope
// @Failure 404 {object} models.Envelope
// @Failure 409 {object} models.Envelope
// @Router /posts/{id}/bookmark [post]
func (s *Server) AddBookmark(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.bookmarkService.Add(c.Context(), authenticatedUserID(c), postID); err != nil {
		return models.RespondWithError(c, err)
	}

	return models.Respond(c, fiber.StatusCreated, "Bookmarked", nil)
}

// RemoveBookmark handles DELETE /api/posts/:id/bookmark
// @Summary Remove a bookmark
// @Tags bookmarks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} models.Envelope
// @Failure 404 {object} models.Envelope
// @Router /posts/{id}/bookmark [delete]
func (s *Server) RemoveBookmark(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.bookmarkService.Remove(c.Context(), authenticatedUserID(c), postID); err != nil {
		return models.RespondWithError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, "Bookmark removed", nil)
}

// GetMyBookmarks handles GET /api/users/me/bookmarks
// @Summary List the authenticated user's bookmarks
// @Tags bookmarks
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} models.Envelope
// @Router /users/me/bookmarks [get]
func (s *Server) GetMyBookmarks(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	bookmarks, err := s.bookmarkService.List(c.Context(), authenticatedUserID(c), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "OK", fiber.Map{"bookmarks": bookmarks})
}
