package handler

import (
	"github.com/BarenJ/AplikasiPanti/internal/middleware"
	"github.com/BarenJ/AplikasiPanti/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	users *usecase.UserUsecase
}

func NewUserHandler(users *usecase.UserUsecase) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) GetAll(c *fiber.Ctx) error {
	users, err := h.users.List()
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": users})
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req usecase.CreateUserInput
	if err := c.BodyParser(&req); err != nil {
		return badBody()
	}
	user, err := h.users.Create(req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User berhasil dibuat", "data": user})
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.users.Delete(id, middleware.UserID(c)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "User berhasil dihapus"})
}

type ChangePasswordRequest struct {
	NewPassword string `json:"new_password"`
	// klien lama mengirim camelCase
	LegacyNewPassword string `json:"newPassword"`
}

func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody()
	}
	if req.NewPassword == "" {
		req.NewPassword = req.LegacyNewPassword
	}
	if err := h.users.ChangePassword(id, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Password berhasil diubah"})
}
