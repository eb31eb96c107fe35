package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/BarenJ/AplikasiPanti/internal/apperr"
	"github.com/BarenJ/AplikasiPanti/internal/session"

	"github.com/gofiber/fiber/v2"
)

const (
	LocalUserID   = "user_id"
	LocalUsername = "username"
	LocalRole     = "role"
	LocalClaims   = "claims"
)

type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*session.Claims, error)
}

func Auth(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Ambil token dari Header Authorization ("Bearer <token>")
		authHeader := c.Get(fiber.HeaderAuthorization)
		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(tokenString) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token tidak ditemukan"})
		}

		// 2. Verifikasi tanda tangan, masa berlaku dan status logout
		claims, err := verifier.Verify(c.UserContext(), strings.TrimSpace(tokenString))
		if err != nil {
			var appErr *apperr.Error
			if errors.As(err, &appErr) && appErr.Kind == apperr.KindUnauthorized {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": appErr.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal memvalidasi token"})
		}

		// 3. Simpan data user ke Context agar bisa dipakai di Handler
		c.Locals(LocalUserID, claims.UserID())
		c.Locals(LocalUsername, claims.Username)
		c.Locals(LocalRole, claims.Role)
		c.Locals(LocalClaims, claims)

		return c.Next()
	}
}

func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals(LocalUserID).(uint)
	return id
}

func Role(c *fiber.Ctx) string {
	role, _ := c.Locals(LocalRole).(string)
	return role
}

func Claims(c *fiber.Ctx) *session.Claims {
	claims, _ := c.Locals(LocalClaims).(*session.Claims)
	return claims
}
