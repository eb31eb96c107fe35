package handler

import (
	"github.com/BarenJ/AplikasiPanti/internal/middleware"
	"github.com/BarenJ/AplikasiPanti/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	users *usecase.UserUsecase
}

func NewAuthHandler(users *usecase.UserUsecase) *AuthHandler {
	return &AuthHandler{users: users}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody()
	}
	if req.Username == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Username dan password harus diisi"})
	}

	result, err := h.users.Login(req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":    "Login berhasil",
		"token":      result.Token,
		"expires_at": result.ExpiresAt,
		"user":       result.User,
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.users.Logout(c.UserContext(), middleware.Claims(c)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Logout berhasil"})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.users.Me(middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": user})
}
