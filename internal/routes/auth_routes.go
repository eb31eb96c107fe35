package routes

import (
	"github.com/BarenJ/AplikasiPanti/internal/handler"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(api fiber.Router, auth fiber.Handler, svc *Services) {
	hdl := handler.NewAuthHandler(svc.Users)

	api.Post("/login", hdl.Login)
	api.Post("/logout", auth, hdl.Logout)
	api.Get("/me", auth, hdl.Me)
}
