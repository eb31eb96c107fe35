package routes

import (
	"github.com/BarenJ/AplikasiPanti/internal/handler"
	"github.com/BarenJ/AplikasiPanti/internal/policy"

	"github.com/gofiber/fiber/v2"
)

func SetupResidentRoutes(api fiber.Router, auth fiber.Handler, svc *Services) {
	hdl := handler.NewResidentHandler(svc.Residents, svc.Rooms, svc.Files)

	r := api.Group("/residents", auth)
	r.Get("/", can(policy.Residents, policy.Read), hdl.GetAll)
	r.Post("/", can(policy.Residents, policy.Create), hdl.Create)
	r.Get("/:id", can(policy.Residents, policy.Read), hdl.GetDetail)
	r.Put("/:id", can(policy.Residents, policy.Update), hdl.Update)
	r.Delete("/:id", can(policy.Residents, policy.Delete), hdl.Delete)
	r.Post("/:id/health-records", can(policy.Residents, policy.Update), hdl.AddHealthRecord)

	// Klien lama memakai PUT, dokumentasi memakai POST
	r.Put("/:id/assign-room", can(policy.Rooms, policy.Assign), hdl.AssignRoom)
	r.Post("/:id/assign-room", can(policy.Rooms, policy.Assign), hdl.AssignRoom)
}
