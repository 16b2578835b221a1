package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "storefront/internal/log"
	"storefront/internal/serialize"
	"storefront/internal/services"
	"storefront/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
	Reviews *services.ReviewService
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.Catalog.ListProducts()
	if err != nil {
		return respondErr(c, err, "Product not found")
	}
	return c.JSON(serialize.ProductsToFlat(products))
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in validate.ProductInput
	if !parseBody(c, &in) {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	p, err := h.Catalog.CreateProduct(in)
	if err != nil {
		return respondErr(c, err, "Product not found")
	}
	applog.Audit(c, "product.create", map[string]any{"id": p.ID})
	return c.Status(fiber.StatusCreated).JSON(serialize.ProductToFlat(p))
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "Product not found")
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil {
		return respondErr(c, err, "Product not found")
	}
	return c.JSON(serialize.ProductToFlat(p))
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "Product not found")
	}
	var in validate.ProductInput
	if !parseBody(c, &in) {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	p, err := h.Catalog.UpdateProduct(id, in)
	if err != nil {
		return respondErr(c, err, "Product not found")
	}
	applog.Audit(c, "product.update", map[string]any{"id": id})
	return c.JSON(serialize.ProductToFlat(p))
}

func (h *ProductHandler) UpdateImage(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "Product not found")
	}
	var in validate.ProductImageInput
	if !parseBody(c, &in) {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	p, err := h.Catalog.UpdateProductImage(id, in)
	if err != nil {
		return respondErr(c, err, "Product not found")
	}
	applog.Audit(c, "product.image.update", map[string]any{"id": id})
	return c.JSON(serialize.ProductToFlat(p))
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "Product not found")
	}
	if err := h.Catalog.DeleteProduct(id); err != nil {
		return respondErr(c, err, "Product not found")
	}
	applog.Audit(c, "product.delete", map[string]any{"id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

// ListReviews serves the product's review list through its reverse relation.
func (h *ProductHandler) ListReviews(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "Product not found")
	}
	reviews, err := h.Reviews.ListByProduct(id)
	if err != nil {
		return respondErr(c, err, "Product not found")
	}
	return c.JSON(serialize.ReviewsToFlat(reviews))
}
