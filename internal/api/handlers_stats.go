package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) GetStatsSummary(c *fiber.Ctx) error {
	return c.JSON(handler.tracker.Summary())
}

func (handler *Handler) GetStatsTrend(c *fiber.Ctx) error {
	days, err := parseTrendDays(c.Query("days"), handler.trendDays)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid days")
	}
	return c.JSON(fiber.Map{
		"days":   days,
		"points": handler.tracker.Trend(days),
	})
}

func (handler *Handler) GetStatsPhases(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"phases": handler.tracker.PhaseBreakdown()})
}
