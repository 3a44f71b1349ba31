package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/reelsmith/api/internal/service"
	"github.com/reelsmith/api/pkg/response"
)

type UploadHandler struct {
	service   *service.UploadService
	validator *validator.Validate
}

func NewUploadHandler(svc *service.UploadService, v *validator.Validate) *UploadHandler {
	return &UploadHandler{
		service:   svc,
		validator: v,
	}
}

// Upload handles POST /api/upload (multipart). Validates presence, size
// and type before forwarding the bytes to hosted storage.
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return response.InvalidInput(c, "No file provided", nil)
	}

	if file.Size > service.MaxUploadSize {
		return response.PayloadTooLarge(c, "File too large. Maximum size is 50MB", map[string]interface{}{
			"maxSize":  service.MaxUploadSize,
			"fileSize": file.Size,
		})
	}

	f, err := file.Open()
	if err != nil {
		return response.UpstreamError(c, "Failed to open file")
	}
	defer f.Close()

	result, err := h.service.Upload(c.Context(), file.Filename, file.Header.Get("Content-Type"), f)
	if err != nil {
		return writeServiceError(c, err)
	}

	return response.OK(c, result)
}

// SignatureRequest is the body of POST /api/upload-signature.
type SignatureRequest struct {
	FileName    string `json:"fileName" validate:"required"`
	ContentType string `json:"contentType"`
}

// Signature handles POST /api/upload-signature: the presigned-upload
// handshake that lets a client PUT its file to storage directly.
func (h *UploadHandler) Signature(c *fiber.Ctx) error {
	var req SignatureRequest
	if err := c.BodyParser(&req); err != nil {
		return response.InvalidInput(c, "Invalid request body", nil)
	}

	if err := h.validator.Struct(&req); err != nil {
		return response.InvalidInput(c, "Validation failed", formatValidationErrors(err))
	}

	result, err := h.service.PresignUpload(c.Context(), req.FileName, req.ContentType)
	if err != nil {
		return writeServiceError(c, err)
	}

	return response.OK(c, result)
}
