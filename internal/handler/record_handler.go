package handler

import (
	"github.com/BarenJ/AplikasiPanti/internal/repository"
	"github.com/BarenJ/AplikasiPanti/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type RecordHandler struct {
	records *usecase.RecordUsecase
}

func NewRecordHandler(records *usecase.RecordUsecase) *RecordHandler {
	return &RecordHandler{records: records}
}

func (h *RecordHandler) GetAll(c *fiber.Ctx) error {
	residentID, err := queryUint(c, "resident_id")
	if err != nil {
		return err
	}
	activityTypeID, err := queryUint(c, "activity_type_id")
	if err != nil {
		return err
	}

	records, err := h.records.List(repository.DailyRecordFilter{
		ResidentID:     residentID,
		DateFrom:       c.Query("date_from"),
		DateTo:         c.Query("date_to"),
		ActivityTypeID: activityTypeID,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": records})
}

func (h *RecordHandler) Create(c *fiber.Ctx) error {
	var req usecase.DailyRecordInput
	if err := c.BodyParser(&req); err != nil {
		return badBody()
	}
	record, err := h.records.Create(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Catatan harian berhasil disimpan", "data": record})
}

func (h *RecordHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.records.Delete(id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Catatan harian berhasil dihapus"})
}
