package handlers

import (
	"stockroom/internal/catalog"
	"stockroom/internal/domain"
	"stockroom/internal/log"
	"stockroom/internal/services"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

type categoryView struct {
	Name   domain.Category          `json:"name"`
	Fields []domain.FieldDescriptor `json:"fields"`
}

// GET /categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats := h.Catalog.ListCategories()
	out := make([]categoryView, 0, len(cats))
	for _, cat := range cats {
		out = append(out, categoryView{Name: cat, Fields: h.Catalog.FieldsFor(cat)})
	}
	return c.JSON(out)
}

// GET /categories/:name/fields
func (h *CategoryHandler) Fields(c *fiber.Ctx) error {
	cat, ok := catalog.ParseCategory(c.Params("name"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "category"})
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Unknown category"})
	}
	return c.JSON(categoryView{Name: cat, Fields: h.Catalog.FieldsFor(cat)})
}
