package server

import (
	"memorymap/internal/models"
	"memorymap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateProfile handles POST /api/users.
// The profile ID always comes from the authenticated token, not the body.
func (s *Server) CreateProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Email    string `json:"email"`
		Username string `json:"username"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.profileService.CreateProfile(c.UserContext(), service.CreateProfileInput{
		ID:       userID,
		Email:    req.Email,
		Username: req.Username,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// GetUser handles GET /api/users/:id
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.profileService.GetProfile(c.UserContext(), id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(user)
}
