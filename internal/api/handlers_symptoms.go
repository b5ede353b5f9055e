package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/flare/internal/models"
)

func (handler *Handler) GetSymptomCatalog(c *fiber.Ctx) error {
	catalog := symptomCatalogResponse{
		Endo: []symptomCatalogItem{},
		IBS:  []symptomCatalogItem{},
	}
	for _, symptom := range models.DefaultSymptomCatalog() {
		item := symptomCatalogItem{Name: symptom.Name, Label: symptom.Label}
		switch symptom.Category {
		case models.CategoryEndo:
			catalog.Endo = append(catalog.Endo, item)
		case models.CategoryIBS:
			catalog.IBS = append(catalog.IBS, item)
		}
	}
	return c.JSON(catalog)
}
