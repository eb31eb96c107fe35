package handler

import (
	"github.com/BarenJ/AplikasiPanti/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type ReferenceHandler struct {
	repo repository.ReferenceRepository
}

func NewReferenceHandler(repo repository.ReferenceRepository) *ReferenceHandler {
	return &ReferenceHandler{repo: repo}
}

func (h *ReferenceHandler) ActivityTypes(c *fiber.Ctx) error {
	types, err := h.repo.ActivityTypes()
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": types})
}

func (h *ReferenceHandler) DonationCategories(c *fiber.Ctx) error {
	categories, err := h.repo.DonationCategories()
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": categories})
}
