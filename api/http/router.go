package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/captable/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
func Register(
	app *fiber.App,
	auth *handlers.AuthHandler,
	shareholders *handlers.ShareholderHandler,
	issuances *handlers.IssuanceHandler,
	health *handlers.HealthHandler,
	authMW fiber.Handler,
	adminMW fiber.Handler,
) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Cap Table Management API is running"})
	})

	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", health.Health)
	v1.Get("/ready", health.Ready)

	a := v1.Group("/auth")
	a.Post("/token", auth.Token)
	a.Post("/refresh", auth.Refresh)
	a.Post("/register", authMW, adminMW, auth.Register)
	a.Get("/me", authMW, auth.Me)

	// Shareholder management is admin-only across the board.
	sh := v1.Group("/shareholders", authMW, adminMW)
	sh.Get("/", shareholders.List)
	sh.Post("/", shareholders.Create)
	sh.Get("/:id", shareholders.GetByID)
	sh.Put("/:id", shareholders.Update)
	sh.Delete("/:id", shareholders.Deactivate)

	iss := v1.Group("/issuances")
	iss.Post("/", authMW, adminMW, issuances.Create)
	iss.Get("/", authMW, issuances.List)
	iss.Get("/distribution", authMW, adminMW, issuances.Distribution)
	iss.Get("/:id/certificate", authMW, issuances.Certificate)
}
