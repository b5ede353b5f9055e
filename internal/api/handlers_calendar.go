package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/flare/internal/services"
)

func (handler *Handler) GetCycleDay(c *fiber.Ctx) error {
	status, err := handler.tracker.CycleStatus(c.Params("date"))
	if err != nil {
		return handler.respondServiceError(c, err, "failed to fetch cycle day")
	}
	return c.JSON(status)
}

// GetCalendar defaults to the month containing today.
func (handler *Handler) GetCalendar(c *fiber.Ctx) error {
	rawMonth := strings.TrimSpace(c.Query("month"))
	if rawMonth == "" {
		rawMonth = handler.tracker.Today()[:len(services.MonthLayout)]
	}

	month, err := services.ParseMonth(rawMonth)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to build calendar")
	}

	return c.JSON(fiber.Map{
		"month": month.Format(services.MonthLayout),
		"days":  handler.tracker.CalendarMonth(month),
	})
}
