package routes

import (
	"github.com/BarenJ/AplikasiPanti/internal/handler"
	"github.com/BarenJ/AplikasiPanti/internal/policy"

	"github.com/gofiber/fiber/v2"
)

func SetupDashboardRoutes(api fiber.Router, auth fiber.Handler, svc *Services) {
	hdl := handler.NewDashboardHandler(svc.Dashboard)

	api.Get("/dashboard-stats", auth, can(policy.Dashboard, policy.Read), hdl.GetStats)
}
