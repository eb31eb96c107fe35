package handler

import (
	"encoding/json"
	"mime/multipart"
	"strings"

	"github.com/BarenJ/AplikasiPanti/internal/apperr"
	"github.com/BarenJ/AplikasiPanti/internal/model"
	"github.com/BarenJ/AplikasiPanti/internal/repository"
	"github.com/BarenJ/AplikasiPanti/internal/storage"
	"github.com/BarenJ/AplikasiPanti/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

// FileStore menyimpan berkas unggahan dan mengembalikan path publiknya.
type FileStore interface {
	Save(file *multipart.FileHeader, kind storage.Kind, field string) (string, error)
	Remove(paths ...string)
}

type ResidentHandler struct {
	residents *usecase.ResidentUsecase
	rooms     *usecase.RoomUsecase
	files     FileStore
}

func NewResidentHandler(residents *usecase.ResidentUsecase, rooms *usecase.RoomUsecase, files FileStore) *ResidentHandler {
	return &ResidentHandler{residents: residents, rooms: rooms, files: files}
}

func (h *ResidentHandler) GetAll(c *fiber.Ctx) error {
	filter := repository.ResidentFilter{
		Search: strings.TrimSpace(c.Query("search")),
		Status: c.Query("status"),
	}
	// Filter "type" memakai sebutan Opa/Oma
	switch c.Query("type") {
	case "":
	case model.ResidentTypeOpa:
		filter.Gender = model.GenderMale
	case model.ResidentTypeOma:
		filter.Gender = model.GenderFemale
	default:
		return apperr.Validation("type", "Field type harus Opa atau Oma")
	}

	residents, err := h.residents.List(filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": residents})
}

func (h *ResidentHandler) GetDetail(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	detail, err := h.residents.Get(id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": detail})
}

func (h *ResidentHandler) Create(c *fiber.Ctx) error {
	in, err := h.parseInput(c)
	if err != nil {
		return err
	}
	if err := h.saveMedia(c, &in); err != nil {
		return err
	}

	created, err := h.residents.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Data penghuni berhasil disimpan",
		"data":    created,
	})
}

func (h *ResidentHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	in, err := h.parseInput(c)
	if err != nil {
		return err
	}
	if err := h.saveMedia(c, &in); err != nil {
		return err
	}

	resident, err := h.residents.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Data penghuni berhasil diperbarui", "data": resident})
}

func (h *ResidentHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.residents.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Data penghuni berhasil dihapus"})
}

type AssignRoomRequest struct {
	RoomID         *uint `json:"room_id"`
	PreviousRoomID *uint `json:"previous_room_id"`
}

func (h *ResidentHandler) AssignRoom(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req AssignRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody()
	}

	resident, err := h.rooms.AssignRoom(c.UserContext(), id, req.RoomID, req.PreviousRoomID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Kamar berhasil ditetapkan", "data": resident})
}

func (h *ResidentHandler) AddHealthRecord(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req usecase.HealthRecordInput
	if err := c.BodyParser(&req); err != nil {
		return badBody()
	}

	record, err := h.residents.AddHealthRecord(id, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Rekam kesehatan berhasil disimpan", "data": record})
}

// parseInput membaca form multipart (guardians/medications berupa string JSON) atau body JSON.
func (h *ResidentHandler) parseInput(c *fiber.Ctx) (usecase.ResidentInput, error) {
	var in usecase.ResidentInput
	if err := c.BodyParser(&in); err != nil {
		return in, badBody()
	}
	if !isMultipart(c) {
		return in, nil
	}
	if err := decodeJSONField(c, "guardians", &in.Guardians); err != nil {
		return in, err
	}
	if err := decodeJSONField(c, "medications", &in.Medications); err != nil {
		return in, err
	}
	return in, nil
}

// saveMedia menyimpan foto/audio; bila audio gagal, foto yang sudah tersimpan dihapus lagi.
func (h *ResidentHandler) saveMedia(c *fiber.Ctx, in *usecase.ResidentInput) error {
	if !isMultipart(c) {
		return nil
	}
	if fh, err := c.FormFile("photo"); err == nil {
		path, err := h.files.Save(fh, storage.KindPhoto, "photo")
		if err != nil {
			return err
		}
		in.PhotoPath = path
	}
	if fh, err := c.FormFile("audio"); err == nil {
		path, err := h.files.Save(fh, storage.KindAudio, "audio")
		if err != nil {
			h.files.Remove(in.PhotoPath)
			return err
		}
		in.AudioPath = path
	}
	return nil
}

func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm)
}

func decodeJSONField(c *fiber.Ctx, field string, dst interface{}) error {
	raw := strings.TrimSpace(c.FormValue(field))
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return apperr.Validation(field, "Format "+field+" tidak valid")
	}
	return nil
}
