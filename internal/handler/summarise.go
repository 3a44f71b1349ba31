package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/reelsmith/api/internal/model"
	"github.com/reelsmith/api/internal/service"
	"github.com/reelsmith/api/pkg/response"
)

type SummariseHandler struct {
	service   *service.SummariseService
	validator *validator.Validate
}

func NewSummariseHandler(svc *service.SummariseService, v *validator.Validate) *SummariseHandler {
	return &SummariseHandler{
		service:   svc,
		validator: v,
	}
}

// Summarise handles POST /api/summarise: newsletter text in, scene script
// out.
func (h *SummariseHandler) Summarise(c *fiber.Ctx) error {
	var req model.SummariseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.InvalidInput(c, "Invalid request body", nil)
	}

	if err := h.validator.Struct(&req); err != nil {
		return response.InvalidInput(c, "Validation failed", formatValidationErrors(err))
	}

	result, err := h.service.Summarise(c.Context(), &req)
	if err != nil {
		return writeServiceError(c, err)
	}

	return response.OK(c, result)
}
