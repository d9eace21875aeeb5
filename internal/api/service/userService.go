package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"reviewhub/internal/api/apierr"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/api/validation"
)

// UserInput carries the fields an admin may set when provisioning a user.
type UserInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Bio       string
	Role      models.Role
}

// UserUpdateInput is a partial update; nil fields are left untouched.
// Role is honored only on the admin path: self-updates preserve the
// stored role no matter what the client sent.
type UserUpdateInput struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *models.Role
}

type UserService interface {
	List(ctx context.Context, search string, page, pageSize int) ([]models.User, int64, error)
	Create(ctx context.Context, in UserInput) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateByUsername(ctx context.Context, username string, in UserUpdateInput) (*models.User, error)
	DeleteByUsername(ctx context.Context, username string) error
	Me(ctx context.Context, userID string) (*models.User, error)
	UpdateMe(ctx context.Context, userID string, in UserUpdateInput) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) List(ctx context.Context, search string, page, pageSize int) ([]models.User, int64, error) {
	return s.userRepo.List(ctx, search, page, pageSize)
}

func (s *userService) Create(ctx context.Context, in UserInput) (*models.User, error) {
	if err := validateSignup(in.Username, in.Email); err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = models.RoleUser
	}
	if !models.ValidRole(role) {
		return nil, apierr.Validation("unknown role %q", role)
	}

	user := &models.User{
		Username:  in.Username,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Bio:       in.Bio,
		Role:      role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apierr.Conflict("username or email already registered")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("user %q not found", username)
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}
	return user, nil
}

// UpdateByUsername is the admin path: every field including role may
// change.
func (s *userService) UpdateByUsername(ctx context.Context, username string, in UserUpdateInput) (*models.User, error) {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, user, in, true)
}

func (s *userService) DeleteByUsername(ctx context.Context, username string) error {
	if err := s.userRepo.DeleteByUsername(ctx, username); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierr.NotFound("user %q not found", username)
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (s *userService) Me(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// valid token but the record is gone
			return nil, apierr.Unauthenticated("account no longer exists")
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}
	return user, nil
}

// UpdateMe never honors a client-supplied role; the stored role is
// preserved to block privilege escalation through the self endpoint.
func (s *userService) UpdateMe(ctx context.Context, userID string, in UserUpdateInput) (*models.User, error) {
	user, err := s.Me(ctx, userID)
	if err != nil {
		return nil, err
	}
	in.Role = nil
	return s.apply(ctx, user, in, false)
}

func (s *userService) apply(ctx context.Context, user *models.User, in UserUpdateInput, allowRole bool) (*models.User, error) {
	if in.Username != nil {
		if err := validation.Username(*in.Username); err != nil {
			return nil, err
		}
		user.Username = *in.Username
	}
	if in.Email != nil {
		if err := validation.Email(*in.Email); err != nil {
			return nil, err
		}
		user.Email = *in.Email
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Bio != nil {
		user.Bio = *in.Bio
	}
	if allowRole && in.Role != nil {
		if !models.ValidRole(*in.Role) {
			return nil, apierr.Validation("unknown role %q", *in.Role)
		}
		user.Role = *in.Role
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apierr.Conflict("username or email already registered")
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// validateSignup runs the shared username/email field rules; storage
// uniqueness is enforced separately by the unique indexes.
func validateSignup(username, email string) error {
	if err := validation.Username(username); err != nil {
		return err
	}
	return validation.Email(email)
}
