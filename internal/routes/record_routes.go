package routes

import (
	"github.com/BarenJ/AplikasiPanti/internal/handler"
	"github.com/BarenJ/AplikasiPanti/internal/policy"

	"github.com/gofiber/fiber/v2"
)

func SetupRecordRoutes(api fiber.Router, auth fiber.Handler, svc *Services) {
	hdl := handler.NewRecordHandler(svc.Records)

	r := api.Group("/records", auth)
	r.Get("/", can(policy.Records, policy.Read), hdl.GetAll)
	r.Post("/", can(policy.Records, policy.Create), hdl.Create)
	r.Delete("/:id", can(policy.Records, policy.Delete), hdl.Delete)
}
