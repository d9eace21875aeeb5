package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"reviewhub/internal/api/apierr"
	"reviewhub/internal/api/auth"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/mail"
)

type AuthService interface {
	Signup(ctx context.Context, username, email string) (*models.User, error)
	IssueToken(ctx context.Context, username, confirmationCode string) (string, error)
}

type authService struct {
	userRepo repository.UserRepository
	mailer   mail.Mailer
	codes    *auth.CodeGenerator
	tokens   *auth.TokenManager
	logger   *slog.Logger
}

func NewAuthService(
	userRepo repository.UserRepository,
	mailer mail.Mailer,
	codes *auth.CodeGenerator,
	tokens *auth.TokenManager,
	logger *slog.Logger,
) AuthService {
	return &authService{
		userRepo: userRepo,
		mailer:   mailer,
		codes:    codes,
		tokens:   tokens,
		logger:   logger,
	}
}

// Signup validates the pair, gets-or-creates the user record and mails
// a confirmation code. Repeating a signup for the same (username,
// email) pair resends the code; claiming a username or email owned by
// a different record is a conflict. A mail delivery failure fails the
// whole attempt so the caller knows no code is on the way.
func (s *authService) Signup(ctx context.Context, username, email string) (*models.User, error) {
	if err := validateSignup(username, email); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByUsernameAndEmail(ctx, username, email)
	switch {
	case err == nil:
		// existing registration, resend the code
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = &models.User{
			Username: username,
			Email:    email,
			Role:     models.RoleUser,
		}
		if createErr := s.userRepo.Create(ctx, user); createErr != nil {
			if repository.IsUniqueViolation(createErr) {
				return nil, apierr.Conflict("username or email already registered")
			}
			return nil, fmt.Errorf("create user: %w", createErr)
		}
	default:
		return nil, fmt.Errorf("look up user: %w", err)
	}

	code := s.codes.Make(user)
	body := fmt.Sprintf("Your confirmation code: %s", code)
	if err := s.mailer.Send(user.Email, "Confirmation code", body); err != nil {
		return nil, fmt.Errorf("deliver confirmation code: %w", err)
	}

	s.logger.Info("signup confirmation sent", "username", user.Username)
	return user, nil
}

// IssueToken exchanges a confirmation code for a signed access token.
func (s *authService) IssueToken(ctx context.Context, username, confirmationCode string) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apierr.NotFound("user %q not found", username)
		}
		return "", fmt.Errorf("look up user: %w", err)
	}

	if !s.codes.Check(user, confirmationCode) {
		return "", apierr.Validation("invalid code")
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}
