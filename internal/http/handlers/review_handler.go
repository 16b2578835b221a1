package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "storefront/internal/log"
	"storefront/internal/serialize"
	"storefront/internal/services"
	"storefront/internal/validate"
)

type ReviewHandler struct {
	Reviews *services.ReviewService
}

func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	var in validate.ReviewInput
	if !parseBody(c, &in) {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	rv, err := h.Reviews.Create(in)
	if err != nil {
		return respondErr(c, err, "Review not found")
	}
	applog.Audit(c, "review.create", map[string]any{"id": rv.ID, "product": rv.ProductID})
	return c.Status(fiber.StatusCreated).JSON(serialize.ReviewToFlat(rv))
}

// Detail expands both the product and the submitting user into full objects.
func (h *ReviewHandler) Detail(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "Review not found")
	}
	rv, p, u, err := h.Reviews.Detail(id)
	if err != nil {
		return respondErr(c, err, "Review not found")
	}
	return c.JSON(serialize.ReviewToDetail(rv, p, u))
}

func (h *ReviewHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "Review not found")
	}
	var in validate.ReviewInput
	if !parseBody(c, &in) {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	rv, err := h.Reviews.Update(id, in)
	if err != nil {
		return respondErr(c, err, "Review not found")
	}
	applog.Audit(c, "review.update", map[string]any{"id": id})
	return c.JSON(serialize.ReviewToFlat(rv))
}
