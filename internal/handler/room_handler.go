package handler

import (
	"github.com/BarenJ/AplikasiPanti/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type RoomHandler struct {
	rooms *usecase.RoomUsecase
}

func NewRoomHandler(rooms *usecase.RoomUsecase) *RoomHandler {
	return &RoomHandler{rooms: rooms}
}

func (h *RoomHandler) GetAll(c *fiber.Ctx) error {
	rooms, err := h.rooms.List()
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": rooms})
}

func (h *RoomHandler) GetAvailable(c *fiber.Ctx) error {
	rooms, err := h.rooms.ListAvailable()
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": rooms})
}

func (h *RoomHandler) Create(c *fiber.Ctx) error {
	var req usecase.RoomInput
	if err := c.BodyParser(&req); err != nil {
		return badBody()
	}
	room, err := h.rooms.Create(req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Kamar berhasil ditambahkan", "data": room})
}

func (h *RoomHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req usecase.RoomInput
	if err := c.BodyParser(&req); err != nil {
		return badBody()
	}
	room, err := h.rooms.Update(c.UserContext(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Kamar berhasil diperbarui", "data": room})
}

func (h *RoomHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.rooms.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Kamar berhasil dihapus"})
}

func (h *RoomHandler) OccupancyReport(c *fiber.Ctx) error {
	report, err := h.rooms.OccupancyReport()
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": report})
}

// Reconcile menjalankan sinkronisasi current_occupants secara manual.
func (h *RoomHandler) Reconcile(c *fiber.Ctx) error {
	corrections, err := h.rooms.ReconcileOccupancy(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Rekonsiliasi kamar selesai", "data": corrections})
}
