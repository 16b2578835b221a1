package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/domain"
	applog "storefront/internal/log"
	"storefront/internal/validate"
)

func jsonError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// paramID parses the :id route segment. Non-numeric ids are indistinguishable
// from missing rows to the client, so both surface as the entity's 404.
func paramID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func parseBody(c *fiber.Ctx, dst any) bool {
	if err := c.BodyParser(dst); err != nil {
		applog.Security(c, "body.parse.fail", map[string]any{"err": err.Error()})
		return false
	}
	return true
}

// respondErr maps service errors onto the wire contract: field-scoped
// validation failures become 400 with a field→messages map, missing rows 404
// with the entity's fixed message, one-to-one violations 409, everything else
// a logged 500.
func respondErr(c *fiber.Ctx, err error, notFoundMsg string) error {
	var fe validate.FieldErrors
	switch {
	case errors.As(err, &fe):
		applog.Security(c, "validation.fail", map[string]any{"fields": fe})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": fe})
	case errors.Is(err, domain.ErrNotFound):
		return jsonError(c, fiber.StatusNotFound, notFoundMsg)
	case errors.Is(err, domain.ErrConflict):
		return jsonError(c, fiber.StatusConflict, "Shipping address already set")
	default:
		applog.Error(c, "server.error", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
