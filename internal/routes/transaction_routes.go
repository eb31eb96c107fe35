package routes

import (
	"github.com/BarenJ/AplikasiPanti/internal/handler"
	"github.com/BarenJ/AplikasiPanti/internal/policy"

	"github.com/gofiber/fiber/v2"
)

func SetupTransactionRoutes(api fiber.Router, auth fiber.Handler, svc *Services) {
	hdl := handler.NewTransactionHandler(svc.Transactions, svc.Files)

	r := api.Group("/transactions", auth)
	r.Get("/", can(policy.Transactions, policy.Read), hdl.GetAll)
	r.Get("/export", can(policy.Transactions, policy.Export), hdl.Export)
	r.Post("/", can(policy.Transactions, policy.Create), hdl.Create)
	r.Delete("/:id", can(policy.Transactions, policy.Delete), hdl.Delete)

	api.Get("/financial-summary", auth, can(policy.Transactions, policy.Read), hdl.FinancialSummary)
}
