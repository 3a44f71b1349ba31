package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/reelsmith/api/internal/service"
	"github.com/reelsmith/api/pkg/response"
)

// writeServiceError converts a relay failure into the JSON error envelope.
// Every internal failure maps onto exactly one taxonomy code; nothing is
// retried here or anywhere else in the server.
func writeServiceError(c *fiber.Ctx, err error) error {
	var invalid *service.InvalidInputError
	if errors.As(err, &invalid) {
		return response.InvalidInput(c, invalid.Message, nil)
	}

	if errors.Is(err, service.ErrNotConfigured) {
		return response.ConfigError(c, err.Error())
	}

	var parse *service.ParseError
	if errors.As(err, &parse) {
		return response.UpstreamParseError(c, parse.Message)
	}

	return response.UpstreamError(c, err.Error())
}

// formatValidationErrors formats validator errors for response
func formatValidationErrors(err error) interface{} {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		errors := make(map[string]string)
		for _, e := range validationErrors {
			errors[e.Field()] = e.Tag()
		}
		return errors
	}
	return nil
}
