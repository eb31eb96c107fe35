package handler

import (
	"time"

	"github.com/BarenJ/AplikasiPanti/internal/apperr"
	"github.com/BarenJ/AplikasiPanti/internal/middleware"
	"github.com/BarenJ/AplikasiPanti/internal/policy"
	"github.com/BarenJ/AplikasiPanti/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	repo repository.DashboardRepository
	now  func() time.Time
}

func NewDashboardHandler(repo repository.DashboardRepository) *DashboardHandler {
	return &DashboardHandler{repo: repo, now: time.Now}
}

func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	now := h.now()
	date := now.Format("2006-01-02")
	month := now.Format("2006-01")

	stats, err := h.repo.GetDashboardStats(date, month)
	if err != nil {
		return apperr.Internal(err)
	}

	// Angka keuangan hanya untuk role yang boleh membaca transaksi
	if !policy.CanAccess(middleware.Role(c), policy.Transactions, policy.Read) {
		delete(stats, "monthly_income")
		delete(stats, "monthly_expense")
	}

	return c.JSON(fiber.Map{
		"message": "Berhasil mengambil statistik",
		"data":    stats,
	})
}
