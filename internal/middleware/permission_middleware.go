package middleware

import (
	"github.com/BarenJ/AplikasiPanti/internal/policy"

	"github.com/gofiber/fiber/v2"
)

// Permission menolak request bila role (diset oleh Auth) tidak punya hak atas resource/action.
func Permission(resource, action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userRole := Role(c)
		if userRole == "" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Akses ditolak: Role tidak valid"})
		}

		if !policy.CanAccess(userRole, resource, action) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Akses ditolak: Anda tidak memiliki izin " + action + " " + resource})
		}

		return c.Next()
	}
}
