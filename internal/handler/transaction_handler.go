package handler

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/BarenJ/AplikasiPanti/internal/apperr"
	"github.com/BarenJ/AplikasiPanti/internal/middleware"
	"github.com/BarenJ/AplikasiPanti/internal/report"
	"github.com/BarenJ/AplikasiPanti/internal/repository"
	"github.com/BarenJ/AplikasiPanti/internal/storage"
	"github.com/BarenJ/AplikasiPanti/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type TransactionHandler struct {
	transactions *usecase.TransactionUsecase
	files        FileStore
}

func NewTransactionHandler(transactions *usecase.TransactionUsecase, files FileStore) *TransactionHandler {
	return &TransactionHandler{transactions: transactions, files: files}
}

func (h *TransactionHandler) filter(c *fiber.Ctx) (repository.TransactionFilter, error) {
	categoryID, err := queryUint(c, "category_id")
	if err != nil {
		return repository.TransactionFilter{}, err
	}
	return repository.TransactionFilter{
		Type:       c.Query("type"),
		Month:      c.Query("month"),
		CategoryID: categoryID,
	}, nil
}

func (h *TransactionHandler) GetAll(c *fiber.Ctx) error {
	filter, err := h.filter(c)
	if err != nil {
		return err
	}
	rows, err := h.transactions.List(filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": rows})
}

func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	in, err := h.parseInput(c)
	if err != nil {
		return err
	}
	if in.RecordedBy == "" {
		if username, ok := c.Locals(middleware.LocalUsername).(string); ok {
			in.RecordedBy = username
		}
	}

	// Lampiran (foto nota / pdf) opsional
	if isMultipart(c) {
		if fh, err := c.FormFile("attachment"); err == nil {
			path, err := h.files.Save(fh, storage.KindAttachment, "attachment")
			if err != nil {
				return err
			}
			in.AttachmentPath = path
		}
	}

	trx, err := h.transactions.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Transaksi berhasil disimpan", "data": trx})
}

func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.transactions.Delete(id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Transaksi berhasil dihapus"})
}

func (h *TransactionHandler) FinancialSummary(c *fiber.Ctx) error {
	summary, err := h.transactions.FinancialSummary(c.Query("year"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": summary})
}

// Export mengirim daftar transaksi (filter sama dengan GetAll) sebagai file xlsx.
func (h *TransactionHandler) Export(c *fiber.Ctx) error {
	filter, err := h.filter(c)
	if err != nil {
		return err
	}
	rows, err := h.transactions.List(filter)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := report.WriteTransactions(&buf, rows); err != nil {
		return apperr.Internal(err)
	}

	filename := fmt.Sprintf("transaksi-%s.xlsx", time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, xlsxMIME)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

// parseInput: form multipart dibaca per field (amount sebagai decimal), selain itu body JSON.
func (h *TransactionHandler) parseInput(c *fiber.Ctx) (usecase.TransactionInput, error) {
	var in usecase.TransactionInput
	if !isMultipart(c) {
		if err := c.BodyParser(&in); err != nil {
			return in, badBody()
		}
		return in, nil
	}

	if raw := c.FormValue("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return in, apperr.Validation("category_id", "Field category_id harus berupa angka")
		}
		in.CategoryID = uint(id)
	}
	amount, err := usecase.ParseAmount(c.FormValue("amount"))
	if err != nil {
		return in, err
	}
	in.Amount = amount
	in.TransactionDate = c.FormValue("transaction_date")
	in.Source = c.FormValue("source")
	in.Description = c.FormValue("description")
	in.PaymentMethod = c.FormValue("payment_method")
	in.ReferenceNumber = c.FormValue("reference_number")
	in.Notes = c.FormValue("notes")
	in.RecordedBy = c.FormValue("recorded_by")
	return in, nil
}
