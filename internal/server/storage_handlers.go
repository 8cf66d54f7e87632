package server

import (
	"bytes"
	"strings"

	"memorymap/internal/models"

	"github.com/gofiber/fiber/v2"
)

const maxUploadBytes = 10 * 1024 * 1024

var allowedBuckets = map[string]bool{
	"images": true,
}

// StorageUploadResponse is the API response after uploading an object.
type StorageUploadResponse struct {
	Bucket    string `json:"bucket"`
	Path      string `json:"path"`
	PublicURL string `json:"public_url"`
}

// UploadObject handles POST /api/storage/:bucket/*.
// The body is either a multipart form with a "file" field or the raw bytes.
func (s *Server) UploadObject(c *fiber.Ctx) error {
	bucket := c.Params("bucket")
	if !allowedBuckets[bucket] {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unknown bucket"))
	}

	path := strings.TrimPrefix(c.Params("*"), "/")
	if path == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Object path is required"))
	}

	var content []byte
	if file, err := c.FormFile("file"); err == nil {
		src, err := file.Open()
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Unable to read uploaded file"))
		}
		defer func() { _ = src.Close() }()

		buf := new(bytes.Buffer)
		if _, err := buf.ReadFrom(src); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Unable to read uploaded file"))
		}
		content = buf.Bytes()
	} else {
		content = c.Body()
	}

	if len(content) == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Empty upload"))
	}
	if len(content) > maxUploadBytes {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Upload too large (max 10MB)"))
	}

	if err := s.store.Upload(c.UserContext(), bucket, path, bytes.NewReader(content)); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(StorageUploadResponse{
		Bucket:    bucket,
		Path:      path,
		PublicURL: s.store.PublicURL(bucket, path),
	})
}

// ServeObject handles GET /media/:bucket/*
func (s *Server) ServeObject(c *fiber.Ctx) error {
	bucket := c.Params("bucket")
	path := strings.TrimPrefix(c.Params("*"), "/")

	reader, mimeType, err := s.store.Open(c.UserContext(), bucket, path)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Object", path))
	}

	c.Set("Content-Type", mimeType)
	c.Set("Cache-Control", "public, max-age=31536000, immutable")
	return c.SendStream(reader)
}
