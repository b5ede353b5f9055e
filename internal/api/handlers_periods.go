package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) GetPeriods(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"periods": handler.tracker.Periods()})
}

func (handler *Handler) TogglePeriodStart(c *fiber.Ctx) error {
	action, status, err := handler.tracker.TogglePeriodStart(c.Params("date"))
	if err != nil {
		return handler.respondServiceError(c, err, "failed to update period")
	}
	return c.JSON(periodToggleResponse{Action: action, Status: status})
}

func (handler *Handler) TogglePeriodEnd(c *fiber.Ctx) error {
	action, status, err := handler.tracker.TogglePeriodEnd(c.Params("date"))
	if err != nil {
		return handler.respondServiceError(c, err, "failed to update period")
	}
	return c.JSON(periodToggleResponse{Action: action, Status: status})
}
