package routes

import (
	"github.com/BarenJ/AplikasiPanti/internal/handler"
	"github.com/BarenJ/AplikasiPanti/internal/policy"

	"github.com/gofiber/fiber/v2"
)

func SetupRoomRoutes(api fiber.Router, auth fiber.Handler, svc *Services) {
	hdl := handler.NewRoomHandler(svc.Rooms)

	r := api.Group("/rooms", auth)
	r.Get("/", can(policy.Rooms, policy.Read), hdl.GetAll)
	r.Get("/available", can(policy.Rooms, policy.Read), hdl.GetAvailable)
	r.Get("/occupancy-report", can(policy.Rooms, policy.Read), hdl.OccupancyReport)
	r.Post("/reconcile", can(policy.Rooms, policy.Delete), hdl.Reconcile)
	r.Post("/", can(policy.Rooms, policy.Create), hdl.Create)
	r.Put("/:id", can(policy.Rooms, policy.Update), hdl.Update)
	r.Delete("/:id", can(policy.Rooms, policy.Delete), hdl.Delete)
}
