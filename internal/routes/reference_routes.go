package routes

import (
	"github.com/BarenJ/AplikasiPanti/internal/handler"
	"github.com/BarenJ/AplikasiPanti/internal/policy"

	"github.com/gofiber/fiber/v2"
)

func SetupReferenceRoutes(api fiber.Router, auth fiber.Handler, svc *Services) {
	hdl := handler.NewReferenceHandler(svc.References)

	api.Get("/activity-types", auth, can(policy.Reference, policy.Read), hdl.ActivityTypes)
	api.Get("/donation-categories", auth, can(policy.Reference, policy.Read), hdl.DonationCategories)
}
