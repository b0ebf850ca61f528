package routes

import (
	"github.com/gofiber/fiber/v2"

	"fledger/internal/modules/ledger/handler"
)

func NewLedgerRoutes(routerApi fiber.Router, h *handler.LedgerHandler) {
	accounts := routerApi.Group("/accounts")
	accounts.Post("/", h.CreateAccount)
	accounts.Get("/", h.ListAccounts)
	accounts.Get("/:id", h.GetAccount)
	accounts.Delete("/:id", h.DeactivateAccount)

	ledger := routerApi.Group("/ledger")
	ledger.Post("/transfer", h.Transfer)
	ledger.Post("/trade", h.Trade)
	ledger.Post("/income", h.RecordIncome)
	ledger.Post("/expense", h.RecordExpense)

	reports := routerApi.Group("/reports")
	reports.Get("/networth", h.NetWorth)
	reports.Get("/cashflow", h.Cashflow)

	routerApi.Get("/prices/:symbol", h.Price)
}
