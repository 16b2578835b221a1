package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "storefront/internal/log"
	"storefront/internal/repos"
	"storefront/internal/serialize"
	"storefront/internal/services"
)

// AdminHandler exposes the admin-only reads and the user delete. Access
// control is the job of the external auth provider fronting this service.
type AdminHandler struct {
	Users   *repos.UserRepo
	Catalog *services.CatalogService
}

// ProductDetail is the admin view of a product: flat fields plus timestamps
// and the owning user reference.
func (h *AdminHandler) ProductDetail(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "Product not found")
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil {
		return respondErr(c, err, "Product not found")
	}
	return c.JSON(serialize.ProductToDetail(p))
}

func (h *AdminHandler) UsersPage(c *fiber.Ctx) error {
	users, err := h.Users.List()
	if err != nil {
		return respondErr(c, err, "User not found")
	}
	out := make([]serialize.UserOut, 0, len(users))
	for _, u := range users {
		out = append(out, serialize.UserToOut(u))
	}
	return c.JSON(out)
}

// DeleteUser removes the account; dependent products, reviews and orders
// keep their rows with the reference nulled by the store.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "User not found")
	}
	if err := h.Users.Delete(id); err != nil {
		return respondErr(c, err, "User not found")
	}
	applog.Audit(c, "admin.user.delete", map[string]any{"user_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
