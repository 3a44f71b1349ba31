package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/reelsmith/api/internal/service"
	"github.com/reelsmith/api/pkg/response"
)

type DownloadHandler struct {
	service *service.DownloadService
}

func NewDownloadHandler(svc *service.DownloadService) *DownloadHandler {
	return &DownloadHandler{service: svc}
}

// Download handles GET /api/download?url=. Streams the finished render
// back with an attachment disposition so the browser saves it as a file.
func (h *DownloadHandler) Download(c *fiber.Ctx) error {
	rawURL := c.Query("url")
	if rawURL == "" {
		return response.InvalidInput(c, "Video URL is required", nil)
	}

	result, err := h.service.Download(c.Context(), rawURL)
	if err != nil {
		return writeServiceError(c, err)
	}

	c.Set(fiber.HeaderContentType, "video/mp4")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, result.FileName))
	if result.ContentLength > 0 {
		return c.SendStream(result.Body, int(result.ContentLength))
	}
	return c.SendStream(result.Body)
}
