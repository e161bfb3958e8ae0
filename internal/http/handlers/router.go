package handlers

import (
	"strings"
	"time"

	"stockroom/internal/config"
	applog "stockroom/internal/log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// mediaPrefix is the URL path stored images are served under.
func mediaPrefix(cfg config.Config) string {
	if p := strings.TrimRight(cfg.MediaURL, "/"); p != "" {
		return p
	}
	return "/media"
}

// NewApp builds the fiber app with middleware and every route.
func NewApp(cfg config.Config, d *Deps) *fiber.App {
	bodyLimit := cfg.BodyLimit
	if bodyLimit <= 0 {
		bodyLimit = 16 << 20
	}
	mediaURL := mediaPrefix(cfg)
	app := fiber.New(fiber.Config{
		AppName:   "stockroom",
		BodyLimit: bodyLimit,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			msg := "Something went wrong. Please try again."
			if e, ok := err.(*fiber.Error); ok && e.Code < fiber.StatusInternalServerError {
				code = e.Code
				msg = e.Message
			}
			applog.Error(c, "server.error", err, map[string]any{"code": code})
			return c.Status(code).JSON(fiber.Map{"message": msg})
		},
	})

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(helmet.New())
	if cfg.CORSOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     "GET,POST,OPTIONS",
			AllowHeaders:     "Origin,Content-Type,Accept",
			AllowCredentials: cfg.CORSOrigins != "*",
			ExposeHeaders:    "X-Request-ID",
			MaxAge:           86400,
		}))
	}
	app.Use(AttachUser(d.Auth))

	// ---------- Media ----------
	app.Get(mediaURL+"/*", Media(d.MediaDir))

	// ---------- Registry ----------
	app.Get("/categories", d.CategoryHandler.List)
	app.Get("/categories/:name/fields", d.CategoryHandler.Fields)

	// ---------- Products ----------
	app.Get("/products", d.ProductHandler.List)
	app.Get("/products/:id", d.ProductHandler.Detail)
	app.Post("/products", limiter.New(limiter.Config{
		Max:        30,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.intake.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"message": "Too many submissions. Please try again shortly."})
		},
	}), d.ProductHandler.Create)

	// ---------- Auth (login throttled) ----------
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"message": "Too many attempts. Please try again later."})
		},
	}), d.AuthHandler.Login)
	app.Post("/logout", d.AuthHandler.Logout)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Not found"})
	})
	return app
}
