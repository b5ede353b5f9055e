package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) GetDays(c *fiber.Ctx) error {
	from, to, err := handler.parseDayRange(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	records, err := handler.tracker.DaysInRange(from, to)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to fetch days")
	}

	return c.JSON(fiber.Map{
		"from": from,
		"to":   to,
		"days": records,
	})
}

func (handler *Handler) GetDay(c *fiber.Ctx) error {
	view, err := handler.tracker.Day(c.Params("date"))
	if err != nil {
		return handler.respondServiceError(c, err, "failed to fetch day")
	}
	return c.JSON(view)
}

func (handler *Handler) SaveDay(c *fiber.Ctx) error {
	day, err := parseDayParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	input, err := parseDayPayload(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := handler.tracker.SaveDay(day, input)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to save day")
	}

	handler.logger.WithField("day", day).WithField("cleared", result.Cleared).Debug("day saved")
	return c.JSON(result)
}

func (handler *Handler) DeleteDay(c *fiber.Ctx) error {
	if err := handler.tracker.DeleteDay(c.Params("date")); err != nil {
		return handler.respondServiceError(c, err, "failed to delete day")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
