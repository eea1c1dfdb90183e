// Package service contains the business logic of the application.
package service

import (
	"context"
	"strings"

	"inkwell/internal/auth"
	"inkwell/internal/models"
	"inkwell/internal/oauth"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

// RegisterInput carries the fields of a local sign-up request.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// AccountService handles registration, credential checks and external
// provider links.
type AccountService struct {
	userRepo    repository.UserRepository
	accountRepo repository.AccountRepository
}

// NewAccountService returns a new AccountService.
func NewAccountService(userRepo repository.UserRepository, accountRepo repository.AccountRepository) *AccountService {
	return &AccountService{
		userRepo:    userRepo,
		accountRepo: accountRepo,
	}
}

// NormalizeEmail lowercases and trims an email so lookups and the unique
// index agree on a single canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// FindByEmail returns the user for the given email, or nil when no such
// user exists.
func (s *AccountService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.userRepo.GetByEmail(ctx, NormalizeEmail(email))
}

// RegisterLocal creates a user with a hashed password and an attached
// profile. Returns a Conflict error when the email is already taken.
func (s *AccountService) RegisterLocal(ctx context.Context, in RegisterInput) (*models.User, error) {
	email := NormalizeEmail(in.Email)
	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateName(in.FirstName); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Email already registered")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: &hash,
		Role:         models.RoleUser,
		Profile: &models.Profile{
			FirstName: in.FirstName,
		},
	}
	if in.LastName != "" {
		user.Profile.LastName = &in.LastName
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	observability.UsersRegistered.WithLabelValues("local").Inc()
	return user, nil
}

// RegisterOrLinkExternal resolves an OAuth identity to a user. A known
// provider identity returns its linked user. An unknown identity whose
// email already belongs to a local user returns that user as-is. Otherwise
// a new passwordless user is created together with the provider link.
func (s *AccountService) RegisterOrLinkExternal(ctx context.Context, info *oauth.GoogleUserInfo) (*models.User, error) {
	account, err := s.accountRepo.GetByProviderIdentity(ctx, oauth.ProviderGoogle, info.ID)
	if err != nil {
		return nil, err
	}
	if account != nil {
		return s.userRepo.GetByID(ctx, account.UserID)
	}

	email := NormalizeEmail(info.Email)
	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		// An email collision signs the existing user in without creating
		// a provider link. See DESIGN.md for the linking discussion.
		return existing, nil
	}

	firstName := info.GivenName
	if firstName == "" {
		firstName = email
	}
	user := &models.User{
		Email: email,
		Role:  models.RoleUser,
		Profile: &models.Profile{
			FirstName: firstName,
		},
	}
	if info.FamilyName != "" {
		user.Profile.LastName = &info.FamilyName
	}
	if info.Picture != "" {
		user.Avatar = &info.Picture
	}

	link := &models.Account{
		Provider:          oauth.ProviderGoogle,
		ProviderAccountID: info.ID,
	}
	if err := s.userRepo.CreateWithAccount(ctx, user, link); err != nil {
		return nil, err
	}

	observability.UsersRegistered.WithLabelValues("google").Inc()
	return user, nil
}

// AuthenticateLocal verifies an email and password pair. Unknown emails,
// passwordless accounts and wrong passwords all fail the same way so the
// response never reveals which part was wrong.
func (s *AccountService) AuthenticateLocal(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == nil {
		observability.AuthFailures.WithLabelValues("bad_credentials").Inc()
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	if !auth.CheckPassword(*user.PasswordHash, password) {
		observability.AuthFailures.WithLabelValues("bad_credentials").Inc()
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	return user, nil
}
