package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)
	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Get("/status", handler.AuthStatus)
	auth.Post("/unlock", handler.Unlock)
	auth.Post("/lock", handler.Lock)

	api.Get("/symptoms", handler.AuthRequired, handler.GetSymptomCatalog)

	days := api.Group("/days", handler.AuthRequired)
	days.Get("", handler.GetDays)
	days.Get("/:date", handler.GetDay)
	days.Put("/:date", handler.SaveDay)
	days.Delete("/:date", handler.DeleteDay)

	periods := api.Group("/periods", handler.AuthRequired)
	periods.Get("", handler.GetPeriods)
	periods.Post("/:date/start", handler.TogglePeriodStart)
	periods.Post("/:date/end", handler.TogglePeriodEnd)

	api.Get("/cycle/:date", handler.AuthRequired, handler.GetCycleDay)
	api.Get("/calendar", handler.AuthRequired, handler.GetCalendar)

	stats := api.Group("/stats", handler.AuthRequired)
	stats.Get("/summary", handler.GetStatsSummary)
	stats.Get("/trend", handler.GetStatsTrend)
	stats.Get("/phases", handler.GetStatsPhases)

	api.Get("/export", handler.AuthRequired, handler.Export)
	api.Post("/import", handler.AuthRequired, handler.Import)
	api.Post("/data/clear", handler.AuthRequired, handler.ClearAllData)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
