package handlers

import (
	"errors"
	"io"
	"log"

	"tugas/internal/middleware"
	"tugas/internal/services"
	"tugas/pkg/filestore"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// maxImageSize caps profile image uploads at 5 MiB.
const maxImageSize = 5 << 20

// ProfileHandler handles HTTP requests for profile management.
type ProfileHandler struct {
	service  *services.ProfileService
	validate *validator.Validate
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(service *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the profile routes with the Fiber app.
func (h *ProfileHandler) RegisterRoutes(router fiber.Router) {
	profileRoutes := router.Group("/profile")
	profileRoutes.Get("/:id", h.HandleGetProfile)
	profileRoutes.Put("/:id", h.HandleUpdateProfile)
	profileRoutes.Put("/:id/password", h.HandleChangePassword)
	profileRoutes.Post("/:id/image", h.HandleUploadImage)
	profileRoutes.Delete("/:id", h.HandleDeleteProfile)
}

// requireOwner rejects requests where the :id parameter is not the
// authenticated user. Profiles are visible and mutable only to their
// owner. On rejection it writes the response itself and returns an
// empty ID; callers must check the ID, not the error, which only
// reports a failed response write.
func requireOwner(c *fiber.Ctx) (string, error) {
	id := c.Params("id")
	if id == "" || id != middleware.UserID(c) {
		return "", c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Forbidden",
		})
	}
	return id, nil
}

func (h *ProfileHandler) profileError(c *fiber.Ctx, err error, op string) error {
	if errors.Is(err, services.ErrUserNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}
	if errors.Is(err, services.ErrUserExists) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "User already exists",
		})
	}
	log.Printf("Error during %s: %v", op, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Could not " + op,
	})
}

// HandleGetProfile returns the authenticated user's profile.
func (h *ProfileHandler) HandleGetProfile(c *fiber.Ctx) error {
	id, err := requireOwner(c)
	if id == "" {
		return err
	}

	user, err := h.service.GetProfile(id)
	if err != nil {
		return h.profileError(c, err, "get profile")
	}
	return c.JSON(user)
}

// HandleUpdateProfile updates username and/or email.
func (h *ProfileHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	id, err := requireOwner(c)
	if id == "" {
		return err
	}

	var upd services.ProfileUpdate
	if err := c.BodyParser(&upd); err != nil {
		log.Printf("Error parsing profile update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(upd); err != nil {
		return validationErrorResponse(c, err)
	}

	user, err := h.service.UpdateProfile(id, upd)
	if err != nil {
		return h.profileError(c, err, "update profile")
	}
	return c.JSON(fiber.Map{
		"message": "Profile updated",
		"user":    user,
	})
}

// ChangePasswordRequest represents the request body for a password change.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// HandleChangePassword verifies the current password and sets a new one.
func (h *ProfileHandler) HandleChangePassword(c *fiber.Ctx) error {
	id, err := requireOwner(c)
	if id == "" {
		return err
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing password change body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.service.ChangePassword(id, req.OldPassword, req.NewPassword); err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid credentials",
			})
		}
		return h.profileError(c, err, "change password")
	}
	return c.JSON(fiber.Map{
		"message": "Password updated",
	})
}

// HandleUploadImage stores a multipart profile image and records its path.
func (h *ProfileHandler) HandleUploadImage(c *fiber.Ctx) error {
	id, err := requireOwner(c)
	if id == "" {
		return err
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No image provided",
		})
	}
	if fileHeader.Size > maxImageSize {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
			"error": "Image too large",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("Error opening uploaded image: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Could not read image",
		})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("Error reading uploaded image: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Could not read image",
		})
	}

	user, err := h.service.UpdateImage(id, data, fileHeader.Filename)
	if err != nil {
		if errors.Is(err, filestore.ErrUnsupportedType) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unsupported image type",
			})
		}
		return h.profileError(c, err, "upload image")
	}
	return c.JSON(fiber.Map{
		"message": "Image uploaded",
		"user":    user,
	})
}

// HandleDeleteProfile deletes the account and all of its to-dos.
func (h *ProfileHandler) HandleDeleteProfile(c *fiber.Ctx) error {
	id, err := requireOwner(c)
	if id == "" {
		return err
	}

	if err := h.service.DeleteAccount(id); err != nil {
		return h.profileError(c, err, "delete account")
	}
	return c.JSON(fiber.Map{
		"message": "User and todos deleted",
	})
}
