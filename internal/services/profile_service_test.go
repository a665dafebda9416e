package services_test

import (
	"os"
	"path/filepath"
	"testing"

	"tugas/internal/models"
	"tugas/internal/repositories"
	"tugas/internal/services"
	"tugas/pkg/filestore"

	"github.com/stretchr/testify/assert"
)

func setupProfileService(t *testing.T) (*services.ProfileService, *services.AuthService, repositories.TodoRepository) {
	t.Helper()
	userRepo := repositories.NewMockUserRepository()
	todoRepo := repositories.NewMockTodoRepository()
	images, err := filestore.NewDiskStore(t.TempDir())
	assert.NoError(t, err)

	authService := services.NewAuthService(userRepo, "test_jwt_secret", 0)
	profileService := services.NewProfileService(userRepo, todoRepo, images)
	return profileService, authService, todoRepo
}

func registerTestUser(t *testing.T, authService *services.AuthService, email string) *models.User {
	t.Helper()
	user := &models.User{Username: "testuser-" + email, Email: email, Password: "password123"}
	assert.NoError(t, authService.RegisterUser(user))
	return user
}

func TestProfileService_GetAndUpdateProfile(t *testing.T) {
	profileService, authService, _ := setupProfileService(t)
	user := registerTestUser(t, authService, "a@x.com")

	got, err := profileService.GetProfile(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, "a@x.com", got.Email)

	updated, err := profileService.UpdateProfile(user.ID, services.ProfileUpdate{
		Username: strPtr("renamed"),
		Email:    strPtr("b@x.com"),
	})
	assert.NoError(t, err)
	assert.Equal(t, "renamed", updated.Username)
	assert.Equal(t, "b@x.com", updated.Email)

	_, err = profileService.GetProfile("no-such-user")
	assert.ErrorIs(t, err, services.ErrUserNotFound)
}

func TestProfileService_UpdateProfileDuplicateEmail(t *testing.T) {
	profileService, authService, _ := setupProfileService(t)
	registerTestUser(t, authService, "taken@x.com")
	user := registerTestUser(t, authService, "mine@x.com")

	_, err := profileService.UpdateProfile(user.ID, services.ProfileUpdate{
		Email: strPtr("taken@x.com"),
	})
	assert.ErrorIs(t, err, services.ErrUserExists)
}

func TestProfileService_ChangePassword(t *testing.T) {
	profileService, authService, _ := setupProfileService(t)
	user := registerTestUser(t, authService, "a@x.com")

	// Wrong current password is rejected with the collapsed credential
	// error, internally a password mismatch.
	err := profileService.ChangePassword(user.ID, "wrong", "newpassword")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	assert.ErrorIs(t, err, services.ErrPasswordMismatch)

	assert.NoError(t, profileService.ChangePassword(user.ID, "password123", "newpassword"))

	// The old password no longer logs in; the new one does.
	_, _, err = authService.LoginUser("a@x.com", "password123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	_, _, err = authService.LoginUser("a@x.com", "newpassword")
	assert.NoError(t, err)
}

func TestProfileService_UpdateImage(t *testing.T) {
	profileService, authService, _ := setupProfileService(t)
	user := registerTestUser(t, authService, "a@x.com")

	data := []byte("not-really-a-png-but-close-enough")
	updated, err := profileService.UpdateImage(user.ID, data, "avatar.png")
	assert.NoError(t, err)
	assert.NotEmpty(t, updated.Image)
	assert.Equal(t, ".png", filepath.Ext(updated.Image))

	stored, err := os.ReadFile(updated.Image)
	assert.NoError(t, err)
	assert.Equal(t, data, stored)

	// Replacing the image removes the previous file.
	replaced, err := profileService.UpdateImage(user.ID, []byte("second"), "avatar.jpg")
	assert.NoError(t, err)
	assert.NotEqual(t, updated.Image, replaced.Image)
	_, err = os.Stat(updated.Image)
	assert.True(t, os.IsNotExist(err))
}

func TestProfileService_DeleteAccountCascades(t *testing.T) {
	profileService, authService, todoRepo := setupProfileService(t)
	user := registerTestUser(t, authService, "a@x.com")

	for _, title := range []string{"one", "two"} {
		assert.NoError(t, todoRepo.Create(&models.Todo{UserID: user.ID, Title: title}))
	}

	assert.NoError(t, profileService.DeleteAccount(user.ID))

	todos, err := todoRepo.GetByUser(user.ID)
	assert.NoError(t, err)
	assert.Empty(t, todos)

	_, err = profileService.GetProfile(user.ID)
	assert.ErrorIs(t, err, services.ErrUserNotFound)

	assert.ErrorIs(t, profileService.DeleteAccount(user.ID), services.ErrUserNotFound)
}
