package services

import (
	"errors"
	"fmt"
	"log"

	"tugas/internal/models"
	"tugas/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// ErrUserNotFound is returned when a profile operation targets a user
// that does not exist.
var ErrUserNotFound = errors.New("user not found")

// ImageStore persists uploaded profile images and returns the stored
// path. Satisfied by *filestore.DiskStore.
type ImageStore interface {
	Save(data []byte, originalName string) (string, error)
	Remove(path string) error
}

// ProfileUpdate carries a partial update of the mutable profile fields.
type ProfileUpdate struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=100"`
	Email    *string `json:"email" validate:"omitempty,email"`
}

// ProfileService handles business logic for profile management: reading
// and updating the account record, password changes, image upload, and
// account deletion.
type ProfileService struct {
	userRepo repositories.UserRepository
	todoRepo repositories.TodoRepository
	images   ImageStore
}

// NewProfileService creates a new ProfileService.
func NewProfileService(userRepo repositories.UserRepository, todoRepo repositories.TodoRepository, images ImageStore) *ProfileService {
	return &ProfileService{
		userRepo: userRepo,
		todoRepo: todoRepo,
		images:   images,
	}
}

// GetProfile retrieves a user record by ID.
func (s *ProfileService) GetProfile(id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies username/email changes. Email uniqueness is
// re-checked by the store on save.
func (s *ProfileService) UpdateProfile(id string, upd ProfileUpdate) (*models.User, error) {
	user, err := s.GetProfile(id)
	if err != nil {
		return nil, err
	}

	if upd.Username != nil {
		user.Username = *upd.Username
	}
	if upd.Email != nil {
		user.Email = *upd.Email
	}

	if err := s.userRepo.Update(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the current password and replaces it with a
// hash of the new one.
func (s *ProfileService) ChangePassword(id, oldPassword, newPassword string) error {
	user, err := s.GetProfile(id)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCredentials, ErrPasswordMismatch)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashed)

	return s.userRepo.Update(user)
}

// UpdateImage stores an uploaded profile image and records its path on
// the user, removing the previously stored image if any.
func (s *ProfileService) UpdateImage(id string, data []byte, originalName string) (*models.User, error) {
	user, err := s.GetProfile(id)
	if err != nil {
		return nil, err
	}

	path, err := s.images.Save(data, originalName)
	if err != nil {
		return nil, err
	}

	oldPath := user.Image
	user.Image = path
	if err := s.userRepo.Update(user); err != nil {
		// Keep the store consistent with the record we failed to write.
		if removeErr := s.images.Remove(path); removeErr != nil {
			return nil, fmt.Errorf("%w (orphaned upload: %v)", err, removeErr)
		}
		return nil, err
	}

	if oldPath != "" && oldPath != path {
		// The record already points at the new image; a failed cleanup
		// of the old file is not the caller's problem.
		if err := s.images.Remove(oldPath); err != nil {
			log.Printf("Warning: failed to remove old profile image %s: %v", oldPath, err)
		}
	}
	return user, nil
}

// DeleteAccount deletes all to-dos owned by the user and then the user
// record itself. The store has no cascading delete; the ordering here is
// what maintains referential integrity.
func (s *ProfileService) DeleteAccount(id string) error {
	user, err := s.GetProfile(id)
	if err != nil {
		return err
	}

	if err := s.todoRepo.DeleteByUser(id); err != nil {
		return fmt.Errorf("failed to delete todos before user %s: %w", id, err)
	}
	if err := s.userRepo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if user.Image != "" && s.images != nil {
		if err := s.images.Remove(user.Image); err != nil {
			return fmt.Errorf("account deleted but image cleanup failed: %w", err)
		}
	}
	return nil
}
