package server

import (
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// FollowUser handles POST /api/users/:id/follow/:followedId
// @Summary Follow another user
// @Tags follows
// @Produce json
// @Security BearerAuth
// @Param id path int true "Follower ID (must be the authenticated user)"
// @Param followedId path int true "User to follow"
// @Success 201 {object} models.Envelope
// @Failure 403 {object} models.Envelope
// @Failure 404 {object} models.Envelope
// @Failure 409 {object} models.Envelope
// @Router /users/{id}/follow/{followedId} [post]
func (s *Server) FollowUser(c *fiber.Ctx) error {
	followerID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	followedID, err := s.parseID(c, "followedId")
	if err != nil {
		return nil
	}

	if followerID != authenticatedUserID(c) {
		return models.RespondWithError(c,
			models.NewForbiddenError("You can only follow on your own behalf"))
	}

	if err := s.followService.Follow(c.Context(), followerID, followedID); err != nil {
		return models.RespondWithError(c, err)
	}

	return models.Respond(c, fiber.StatusCreated, "Followed", nil)
}

// UnfollowUser handles DELETE /api/users/:id/unfollow/:followedId
// @Summary Stop following another user
// @Tags follows
// @Produce json
// @Security BearerAuth
// @Param id path int true "Follower ID (must be the authenticated user)"
// @Param followedId path int true "User to unfollow"
// @Success 200 {object} models.Envelope
// @Failure 403 {object} models.Envelope
// @Failure 404 {object} models.Envelope
// @Router /users/{id}/unfollow/{followedId} [delete]
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	followerID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	followedID, err := s.parseID(c, "followedId")
	if err != nil {
		return nil
	}

	if followerID != authenticatedUserID(c) {
		return models.RespondWithError(c,
			models.NewForbiddenError("You can only unfollow on your own behalf"))
	}

	if err := s.followService.Unfollow(c.Context(), followerID, followedID); err != nil {
		return models.RespondWithError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, "Unfollowed", nil)
}
