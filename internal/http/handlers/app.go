package handlers

import (
	"time"

	applog "kriya/internal/log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

const maxBodySize = 1 << 20 // 1 MiB

// NewApp builds the storefront API with its middleware and routes.
func NewApp(d *Deps) *fiber.App {
	cfg := d.Config
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler,
		BodyLimit:    maxBodySize,
	})

	// ---------- Middlewares ----------
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(LoadUser(d.Auth))
	app.Use(limiter.New(limiter.Config{
		Max:        orDefault(cfg.RateLimit, 60),
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/healthz"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.global.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	}))
	loginLimiter := limiter.New(limiter.Config{
		Max:        orDefault(cfg.LoginRateLimit, 5),
		Expiration: 10 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|login"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many attempts. Please try again later."})
		},
	})

	api := app.Group("/api/v1")

	// Catalog
	api.Get("/categories", d.CatalogHandler.Categories)
	api.Get("/categories/:id/products", d.CatalogHandler.ByCategory)
	api.Get("/products/:id", d.CatalogHandler.Product)
	api.Get("/search", d.CatalogHandler.Search)

	// Cart
	api.Get("/cart", d.CartHandler.View)
	api.Post("/cart/items", d.CartHandler.Add)
	api.Patch("/cart/items/:id", d.CartHandler.SetQuantity)
	api.Delete("/cart/items/:id", d.CartHandler.Remove)
	api.Delete("/cart", d.CartHandler.Clear)
	api.Post("/cart/promo", d.CartHandler.ApplyPromo)

	// Auth
	api.Post("/auth/register", loginLimiter, d.AuthHandler.Register)
	api.Post("/auth/login", loginLimiter, d.AuthHandler.Login)
	api.Post("/auth/logout", d.AuthHandler.Logout)
	api.Get("/me", RequireUser(), d.AuthHandler.Me)

	// Addresses & orders
	api.Get("/addresses", RequireUser(), d.AddressHandler.List)
	api.Post("/addresses", RequireUser(), d.AddressHandler.Create)
	api.Delete("/addresses/:id", RequireUser(), d.AddressHandler.Delete)
	api.Post("/checkout", RequireUser(), d.OrderHandler.Checkout)
	api.Get("/orders", RequireUser(), d.OrderHandler.History)
	api.Get("/orders/:id", d.OrderHandler.View)

	// Admin
	admin := app.Group("/admin", RequireAdmin())
	admin.Get("/orders", d.AdminHandler.Orders)
	admin.Post("/orders/:id/status", d.AdminHandler.UpdateOrderStatus)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Page not found"})
	})
	return app
}

func orDefault(n, def int) int {
	if n > 0 {
		return n
	}
	return def
}
