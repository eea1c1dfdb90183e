package server

import (
	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// SignUp handles POST /api/auth/sign-up
// @Summary Register a new account
// @Description Create a user with an email, password and profile name
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{email=string,password=string,firstName=string,lastName=string} true "Sign-up request"
// @Success 201 {object} models.Envelope
// @Failure 400 {object} models.Envelope
// @Failure 409 {object} models.Envelope
// @Router /auth/sign-up [post]
func (s *Server) SignUp(c *fiber.Ctx) error {
	var req struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	if req.Email == "" || req.Password == "" || req.FirstName == "" {
		return models.RespondWithError(c,
			models.NewValidationError("Email, password, and first name are required"))
	}

	user, err := s.accountService.RegisterLocal(c.Context(), service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}
	observability.TokensIssued.WithLabelValues("password").Inc()

	return models.Respond(c, fiber.StatusCreated, "Account created", fiber.Map{
		"token": token,
		"user":  user,
	})
}

// SignIn handles POST /api/auth/sign-in
// @Summary Sign in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{email=string,password=string} true "Credentials"
// @Success 200 {object} models.Envelope
// @Failure 401 {object} models.Envelope
// @Router /auth/sign-in [post]
func (s *Server) SignIn(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.accountService.AuthenticateLocal(c.Context(), req.Email, req.Password)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}
	observability.TokensIssued.WithLabelValues("password").Inc()

	return models.Respond(c, fiber.StatusOK, "Signed in", fiber.Map{
		"token": token,
		"user":  user,
	})
}

// SignOut handles POST /api/auth/sign-out
// @Summary Revoke the presented token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Envelope
// @Failure 401 {object} models.Envelope
// @Router /auth/sign-out [post]
func (s *Server) SignOut(c *fiber.Ctx) error {
	claims := claimsFromLocals(c)
	if claims != nil && claims.ID != "" && claims.ExpiresAt != nil {
		if err := cache.RevokeToken(c.Context(), s.redis, claims.ID, claims.ExpiresAt.Time); err != nil {
			return models.RespondWithError(c, models.NewInternalError(err))
		}
	}
	return models.Respond(c, fiber.StatusOK, "Signed out", nil)
}

// GoogleRedirect handles GET /api/auth/google
// @Summary Start the Google sign-in flow
// @Tags auth
// @Success 302
// @Router /auth/google [get]
func (s *Server) GoogleRedirect(c *fiber.Ctx) error {
	if s.google == nil {
		return models.RespondWithError(c,
			models.NewValidationError("Google sign-in is not configured"))
	}

	state := uuid.New().String()
	if err := cache.StoreOAuthState(c.Context(), s.redis, state); err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	return c.Redirect(s.google.AuthCodeURL(state), fiber.StatusFound)
}

// GoogleCallback handles GET /api/auth/google/callback
// @Summary Complete the Google sign-in flow
// @Tags auth
// @Produce json
// @Param code query string true "Authorization code"
// @Param state query string true "State nonce"
// @Success 200 {object} models.Envelope
// @Failure 401 {object} models.Envelope
// @Router /auth/google/callback [get]
func (s *Server) GoogleCallback(c *fiber.Ctx) error {
	if s.google == nil {
		return models.RespondWithError(c,
			models.NewValidationError("Google sign-in is not configured"))
	}

	state := c.Query("state")
	code := c.Query("code")
	if state == "" || code == "" {
		return models.RespondWithError(c,
			models.NewValidationError("Missing state or code"))
	}

	if !cache.ConsumeOAuthState(c.Context(), s.redis, state) {
		observability.AuthFailures.WithLabelValues("oauth_state").Inc()
		return models.RespondWithError(c,
			models.NewUnauthorizedError("Invalid or expired state"))
	}

	oauthToken, err := s.google.Exchange(c.Context(), code)
	if err != nil {
		observability.AuthFailures.WithLabelValues("oauth_exchange").Inc()
		return models.RespondWithError(c,
			models.NewUnauthorizedError("Authorization code exchange failed"))
	}

	info, err := s.google.UserInfo(c.Context(), oauthToken)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	user, err := s.accountService.RegisterOrLinkExternal(c.Context(), info)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}
	observability.TokensIssued.WithLabelValues("oauth").Inc()

	return models.Respond(c, fiber.StatusOK, "Signed in", fiber.Map{
		"token": token,
		"user":  user,
	})
}
