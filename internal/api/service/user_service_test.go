package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"reviewhub/internal/api/apierr"
	"reviewhub/internal/api/models"
)

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("DefaultsRoleToUser", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewUserService(userRepo)

		userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			return u.Role == models.RoleUser
		})).Return(nil).Once()

		user, err := svc.Create(ctx, UserInput{Username: "alice", Email: "alice@example.com"})
		require.NoError(t, err)
		assert.Equal(t, models.RoleUser, user.Role)
	})

	t.Run("AdminMaySetRole", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewUserService(userRepo)

		userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			return u.Role == models.RoleModerator
		})).Return(nil).Once()

		user, err := svc.Create(ctx, UserInput{
			Username: "mod", Email: "mod@example.com", Role: models.RoleModerator,
		})
		require.NoError(t, err)
		assert.Equal(t, models.RoleModerator, user.Role)
	})

	t.Run("UnknownRoleRejected", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewUserService(userRepo)

		_, err := svc.Create(ctx, UserInput{
			Username: "x", Email: "x@example.com", Role: "owner",
		})
		var verr *apierr.ValidationError
		assert.ErrorAs(t, err, &verr)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("DuplicateConflicts", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewUserService(userRepo)

		userRepo.On("Create", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey).Once()

		_, err := svc.Create(ctx, UserInput{Username: "alice", Email: "alice@example.com"})
		var conflict *apierr.ConflictError
		assert.ErrorAs(t, err, &conflict)
	})
}

func TestUserService_UpdateByUsername(t *testing.T) {
	ctx := context.Background()

	t.Run("RoleChangeHonored", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewUserService(userRepo)

		stored := &models.User{ID: "id-1", Username: "alice", Email: "alice@example.com", Role: models.RoleUser}
		userRepo.On("FindByUsername", mock.Anything, "alice").Return(stored, nil).Once()
		userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			return u.Role == models.RoleAdmin
		})).Return(nil).Once()

		role := models.RoleAdmin
		user, err := svc.UpdateByUsername(ctx, "alice", UserUpdateInput{Role: &role})
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, user.Role)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewUserService(userRepo)

		userRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound).Once()

		_, err := svc.UpdateByUsername(ctx, "ghost", UserUpdateInput{})
		assert.True(t, apierr.IsNotFound(err))
	})

	t.Run("InvalidUsernameRejected", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewUserService(userRepo)

		stored := &models.User{ID: "id-1", Username: "alice", Email: "alice@example.com", Role: models.RoleUser}
		userRepo.On("FindByUsername", mock.Anything, "alice").Return(stored, nil).Once()

		bad := "has space"
		_, err := svc.UpdateByUsername(ctx, "alice", UserUpdateInput{Username: &bad})
		var verr *apierr.ValidationError
		assert.ErrorAs(t, err, &verr)
		userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestUserService_UpdateMe(t *testing.T) {
	ctx := context.Background()

	t.Run("RolePreserved", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewUserService(userRepo)

		stored := &models.User{ID: "id-1", Username: "alice", Email: "alice@example.com", Role: models.RoleUser}
		userRepo.On("FindByID", mock.Anything, "id-1").Return(stored, nil).Once()
		userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			return u.Role == models.RoleUser && u.Bio == "new bio"
		})).Return(nil).Once()

		// a self-update smuggling a role bump must not take effect
		role := models.RoleAdmin
		bio := "new bio"
		user, err := svc.UpdateMe(ctx, "id-1", UserUpdateInput{Role: &role, Bio: &bio})
		require.NoError(t, err)
		assert.Equal(t, models.RoleUser, user.Role)
	})

	t.Run("VanishedAccountIsUnauthenticated", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewUserService(userRepo)

		userRepo.On("FindByID", mock.Anything, "gone").Return(nil, gorm.ErrRecordNotFound).Once()

		_, err := svc.UpdateMe(ctx, "gone", UserUpdateInput{})
		var unauth *apierr.UnauthenticatedError
		assert.ErrorAs(t, err, &unauth)
	})
}

func TestUserService_DeleteByUsername(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewUserService(userRepo)

		userRepo.On("DeleteByUsername", mock.Anything, "alice").Return(nil).Once()
		assert.NoError(t, svc.DeleteByUsername(ctx, "alice"))
	})

	t.Run("UnknownUser", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewUserService(userRepo)

		userRepo.On("DeleteByUsername", mock.Anything, "ghost").Return(gorm.ErrRecordNotFound).Once()
		assert.True(t, apierr.IsNotFound(svc.DeleteByUsername(ctx, "ghost")))
	})
}
