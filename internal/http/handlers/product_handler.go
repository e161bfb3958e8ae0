package handlers

import (
	"database/sql"
	"errors"

	"stockroom/internal/catalog"
	"stockroom/internal/domain"
	"stockroom/internal/log"
	"stockroom/internal/services"
	"stockroom/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Intake  *services.IntakeService
	Catalog *services.CatalogService
}

// POST /products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	payload, err := readPayload(c)
	if err != nil {
		log.Security(c, "validation.fail", map[string]any{"field": "form", "reason": err.Error()})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Could not read the submitted form"})
	}
	res := h.Intake.Submit(log.WithRequest(c.UserContext(), c), currentUserID(c), payload)
	return c.Status(intakeStatus(res)).JSON(res)
}

func intakeStatus(res domain.IntakeResult) int {
	var verr *validate.ValidationError
	var perr *services.PersistenceError
	switch {
	case res.OK():
		return fiber.StatusCreated
	case errors.Is(res.Err, services.ErrUnauthenticated):
		return fiber.StatusUnauthorized
	case errors.As(res.Err, &verr):
		return fiber.StatusUnprocessableEntity
	case errors.As(res.Err, &perr):
		return fiber.StatusInternalServerError
	}
	return fiber.StatusInternalServerError
}

// GET /products/:id
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "This item is no longer available"})
	}
	p, err := h.Catalog.GetProduct(c.UserContext(), id)
	if errors.Is(err, sql.ErrNoRows) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "This item is no longer available"})
	}
	if err != nil {
		return err
	}
	return c.JSON(p)
}

// GET /products?category=&page=
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var cat domain.Category
	if raw := c.Query("category"); raw != "" {
		parsed, ok := catalog.ParseCategory(raw)
		if !ok {
			log.Security(c, "validation.fail", map[string]any{"field": "category"})
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Unknown category"})
		}
		cat = parsed
	}
	page := validate.Page(c.Query("page"))
	items, err := h.Catalog.ListProducts(c.UserContext(), cat, page, 12)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"page": page, "products": items})
}
