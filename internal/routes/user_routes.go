package routes

import (
	"github.com/BarenJ/AplikasiPanti/internal/handler"
	"github.com/BarenJ/AplikasiPanti/internal/policy"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(api fiber.Router, auth fiber.Handler, svc *Services) {
	hdl := handler.NewUserHandler(svc.Users)

	r := api.Group("/users", auth)
	r.Get("/", can(policy.Users, policy.Read), hdl.GetAll)
	r.Post("/", can(policy.Users, policy.Create), hdl.Create)
	r.Delete("/:id", can(policy.Users, policy.Delete), hdl.Delete)
	r.Put("/:id/password", can(policy.Users, policy.Update), hdl.ChangePassword)
}
