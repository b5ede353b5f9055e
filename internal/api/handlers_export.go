package api

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/flare/internal/services"
)

func (handler *Handler) Export(c *fiber.Ctx) error {
	format, err := services.NormalizeExportFormat(c.Query("format"))
	if err != nil {
		return handler.respondServiceError(c, err, "failed to build export")
	}

	document := handler.tracker.Export()
	serialized, err := services.EncodeExport(document, format)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to build export")
	}

	setExportAttachmentHeaders(c, services.ExportContentType(format), services.ExportFileName(document.ExportDate, format))
	return c.Send(serialized)
}

// Import replaces every stored day and period with the uploaded document.
func (handler *Handler) Import(c *fiber.Ctx) error {
	document, err := services.DecodeImport(c.Body())
	if err != nil {
		return handler.respondServiceError(c, err, "failed to import data")
	}
	if err := handler.tracker.Import(document); err != nil {
		return handler.respondServiceError(c, err, "failed to import data")
	}

	handler.logger.WithField("days", len(document.Symptoms)).WithField("periods", len(document.Cycle.Periods)).Info("data imported")
	return c.JSON(fiber.Map{
		"ok":      true,
		"days":    len(document.Symptoms),
		"periods": len(document.Cycle.Periods),
	})
}

func (handler *Handler) ClearAllData(c *fiber.Ctx) error {
	if err := handler.tracker.ClearAll(); err != nil {
		return handler.respondServiceError(c, err, "failed to clear data")
	}
	handler.logger.Info("all tracker data cleared")
	return c.JSON(fiber.Map{"ok": true})
}

func setExportAttachmentHeaders(c *fiber.Ctx, contentType string, filename string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
}
