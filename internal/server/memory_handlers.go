package server

import (
	"memorymap/internal/models"
	"memorymap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateMemory handles POST /api/memories
func (s *Server) CreateMemory(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Date        string   `json:"date"`
		Latitude    float64  `json:"latitude"`
		Longitude   float64  `json:"longitude"`
		ImageURL    *string  `json:"image_url"`
		Tags        []string `json:"tags"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	memory, err := s.memoryService.CreateMemory(c.UserContext(), service.CreateMemoryInput{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		ImageURL:    req.ImageURL,
		Tags:        req.Tags,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(memory)
}

// GetMemories handles GET /api/memories.
// With ?mine=true and a valid token, only the caller's memories are returned.
func (s *Server) GetMemories(c *fiber.Ctx) error {
	pagination := parsePagination(c, 20)

	var userID uint
	if c.QueryBool("mine", false) {
		id, ok := c.Locals("userID").(uint)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}
		userID = id
	}

	memories, err := s.memoryService.ListMemories(c.UserContext(), service.ListMemoriesInput{
		Limit:  pagination.Limit,
		Offset: pagination.Offset,
		UserID: userID,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(memories)
}

// GetMemory handles GET /api/memories/:id
func (s *Server) GetMemory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	memory, err := s.memoryService.GetMemory(c.UserContext(), id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(memory)
}

// DeleteMemory handles DELETE /api/memories/:id
func (s *Server) DeleteMemory(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.memoryService.DeleteMemory(c.UserContext(), userID, id); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"message": "Memory deleted"})
}
