package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"storefront/internal/repos"
	"storefront/internal/services"
)

type Deps struct {
	ProductHandler *ProductHandler
	ReviewHandler  *ReviewHandler
	OrderHandler   *OrderHandler
	AdminHandler   *AdminHandler
}

func NewDeps(db *sqlx.DB) *Deps {
	prodRepo := repos.NewProductRepo(db)
	reviewRepo := repos.NewReviewRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	userRepo := repos.NewUserRepo(db)

	catalogSvc := services.NewCatalogService(prodRepo)
	reviewSvc := services.NewReviewService(reviewRepo, prodRepo, userRepo)
	orderSvc := services.NewOrderService(orderRepo, prodRepo, userRepo)

	return &Deps{
		ProductHandler: &ProductHandler{Catalog: catalogSvc, Reviews: reviewSvc},
		ReviewHandler:  &ReviewHandler{Reviews: reviewSvc},
		OrderHandler:   &OrderHandler{Orders: orderSvc},
		AdminHandler:   &AdminHandler{Users: userRepo, Catalog: catalogSvc},
	}
}

// Register mounts the full surface on the app. Kept here so the binary and
// the tests run identical routing.
func Register(app *fiber.App, d *Deps) {
	app.Get("/health/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Get("/products/", d.ProductHandler.List)
	app.Post("/products/", d.ProductHandler.Create)
	app.Get("/products/:id/", d.ProductHandler.Get)
	app.Patch("/products/:id/", d.ProductHandler.Update)
	app.Put("/products/:id/image/", d.ProductHandler.UpdateImage)
	app.Delete("/products/:id/", d.ProductHandler.Delete)
	app.Get("/products/:id/reviews/", d.ProductHandler.ListReviews)

	app.Post("/reviews/", d.ReviewHandler.Create)
	app.Get("/reviews/:id/", d.ReviewHandler.Detail)
	app.Patch("/reviews/:id/", d.ReviewHandler.Update)

	app.Get("/orders/", d.OrderHandler.List)
	app.Post("/orders/", d.OrderHandler.Create)
	app.Get("/orders/:id/", d.OrderHandler.Detail)
	app.Delete("/orders/:id/", d.OrderHandler.Delete)
	app.Post("/orders/:id/items/", d.OrderHandler.AddItem)
	app.Get("/orders/:id/shipping/", d.OrderHandler.ShippingDetail)
	app.Post("/orders/:id/shipping/", d.OrderHandler.SetShipping)

	admin := app.Group("/admin")
	admin.Get("/products/:id/", d.AdminHandler.ProductDetail)
	admin.Get("/users/", d.AdminHandler.UsersPage)
	admin.Post("/users/:id/delete", d.AdminHandler.DeleteUser)
}
