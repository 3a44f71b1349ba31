package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/reelsmith/api/internal/model"
	"github.com/reelsmith/api/internal/service"
	"github.com/reelsmith/api/pkg/response"
)

type VideoHandler struct {
	service   *service.VideoService
	validator *validator.Validate
}

func NewVideoHandler(svc *service.VideoService, v *validator.Validate) *VideoHandler {
	return &VideoHandler{
		service:   svc,
		validator: v,
	}
}

// Generate handles POST /api/generate-video. The request's own origin is
// forwarded so site-relative media URLs can be rewritten for the rendering
// backend.
func (h *VideoHandler) Generate(c *fiber.Ctx) error {
	var req model.GenerateVideoRequest
	if err := c.BodyParser(&req); err != nil {
		return response.InvalidInput(c, "Invalid request body", nil)
	}

	if err := h.validator.Struct(&req); err != nil {
		return response.InvalidInput(c, "Validation failed", formatValidationErrors(err))
	}

	result, err := h.service.GenerateVideo(c.Context(), &req, c.BaseURL())
	if err != nil {
		return writeServiceError(c, err)
	}

	return response.OK(c, result)
}

// Status handles GET /api/status?renderId=.
func (h *VideoHandler) Status(c *fiber.Ctx) error {
	renderID := c.Query("renderId")
	if renderID == "" {
		return response.InvalidInput(c, "renderId query parameter is required", nil)
	}

	result, err := h.service.GetStatus(c.Context(), renderID)
	if err != nil {
		return writeServiceError(c, err)
	}

	return response.OK(c, result)
}

// Voices handles GET /api/voices, exposing the TTS voice catalogue.
func (h *VideoHandler) Voices(c *fiber.Ctx) error {
	return response.OK(c, fiber.Map{"voices": model.Voices})
}
