package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/flare/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func csrfToken(c *fiber.Ctx) string {
	token, _ := c.Locals(contextCSRFKey).(string)
	return token
}

// respondServiceError maps service sentinels to HTTP statuses. Anything
// unrecognized is logged and reported as a 500 with fallback.
func (handler *Handler) respondServiceError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrInvalidDay):
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	case errors.Is(err, services.ErrInvalidDayRange):
		return apiError(c, fiber.StatusBadRequest, "invalid range")
	case errors.Is(err, services.ErrInvalidMonth):
		return apiError(c, fiber.StatusBadRequest, "invalid month")
	case errors.Is(err, services.ErrInvalidSeverity):
		return apiError(c, fiber.StatusBadRequest, "invalid severity")
	case errors.Is(err, services.ErrInvalidSymptomName):
		return apiError(c, fiber.StatusBadRequest, "invalid symptom name")
	case errors.Is(err, services.ErrNotesTooLong):
		return apiError(c, fiber.StatusBadRequest, "notes too long")
	case errors.Is(err, services.ErrInvalidExportFormat):
		return apiError(c, fiber.StatusBadRequest, "invalid export format")
	case errors.Is(err, services.ErrInvalidImport):
		return apiError(c, fiber.StatusBadRequest, "invalid import document")
	case errors.Is(err, services.ErrNoOpenPeriod):
		return apiError(c, fiber.StatusConflict, "no open period")
	}

	handler.logger.WithError(err).WithField("path", c.Path()).Error(fallback)
	return apiError(c, fiber.StatusInternalServerError, fallback)
}
