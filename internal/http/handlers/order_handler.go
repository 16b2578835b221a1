package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "storefront/internal/log"
	"storefront/internal/serialize"
	"storefront/internal/services"
	"storefront/internal/validate"
)

type OrderHandler struct {
	Orders *services.OrderService
}

func (h *OrderHandler) List(c *fiber.Ctx) error {
	orders, err := h.Orders.List()
	if err != nil {
		return respondErr(c, err, "Order not found")
	}
	return c.JSON(serialize.OrdersToFlat(orders))
}

func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in validate.OrderInput
	if !parseBody(c, &in) {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	o, err := h.Orders.Create(in)
	if err != nil {
		return respondErr(c, err, "Order not found")
	}
	applog.Audit(c, "order.create", map[string]any{"id": o.ID})
	return c.Status(fiber.StatusCreated).JSON(serialize.OrderToFlat(o))
}

// Detail returns the order with order_items expanded, each item carrying its
// full product object (or null if the product was deleted).
func (h *OrderHandler) Detail(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "Order not found")
	}
	o, items, products, err := h.Orders.Detail(id)
	if err != nil {
		return respondErr(c, err, "Order not found")
	}
	return c.JSON(serialize.OrderToDetail(o, items, products))
}

func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "Order not found")
	}
	if err := h.Orders.Delete(id); err != nil {
		return respondErr(c, err, "Order not found")
	}
	applog.Audit(c, "order.delete", map[string]any{"id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *OrderHandler) AddItem(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "Order not found")
	}
	var in validate.OrderItemInput
	if !parseBody(c, &in) {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	it, err := h.Orders.AddItem(id, in)
	if err != nil {
		return respondErr(c, err, "Order not found")
	}
	applog.Audit(c, "order.item.add", map[string]any{"order": id, "item": it.ID})
	return c.Status(fiber.StatusCreated).JSON(serialize.OrderItemToFlat(it))
}

func (h *OrderHandler) SetShipping(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "Order not found")
	}
	var in validate.ShippingAddressInput
	if !parseBody(c, &in) {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	sa, err := h.Orders.SetShipping(id, in)
	if err != nil {
		return respondErr(c, err, "Order not found")
	}
	applog.Audit(c, "order.shipping.set", map[string]any{"order": id})
	return c.Status(fiber.StatusCreated).JSON(serialize.ShippingAddressToFlat(sa))
}

func (h *OrderHandler) ShippingDetail(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "Shipping address not found")
	}
	sa, o, items, products, err := h.Orders.ShippingDetail(id)
	if err != nil {
		return respondErr(c, err, "Shipping address not found")
	}
	detail := serialize.OrderToDetail(o, items, products)
	return c.JSON(serialize.ShippingAddressToDetail(sa, &detail))
}
