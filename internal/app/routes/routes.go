package routes

import (
	"github.com/gofiber/fiber/v2"

	"fledger/internal/app/factory"
)

func NewRoutes(app *fiber.App, container *factory.Container) {
	routerApi := app.Group("/api")

	// Register healthz routes
	healthzRoutes := routerApi.Group("/healthz")
	NewHealthzRoutes(healthzRoutes)

	// Ledger routes
	NewLedgerRoutes(routerApi, container.LedgerHandler)
}
