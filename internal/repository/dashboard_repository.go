package repository

import (
	"github.com/BarenJ/AplikasiPanti/internal/model"

	"gorm.io/gorm"
)

type DashboardRepository interface {
	GetDashboardStats(date string, month string) (map[string]interface{}, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db}
}

// GetDashboardStats: date berformat YYYY-MM-DD, month YYYY-MM.
func (r *dashboardRepository) GetDashboardStats(date string, month string) (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	// 1. Penghuni aktif
	var activeResidents int64
	if err := r.db.Model(&model.Resident{}).Where("status = ?", model.ResidentAktif).Count(&activeResidents).Error; err != nil {
		return nil, err
	}
	stats["active_residents"] = activeResidents

	// 2. Catatan harian hari ini
	todayRecords, err := NewDailyRecordRepository(r.db).CountOnDate(date)
	if err != nil {
		return nil, err
	}
	stats["today_records"] = todayRecords

	// 3. Keuangan bulan ini
	totals, err := NewTransactionRepository(r.db).Totals(month)
	if err != nil {
		return nil, err
	}
	stats["monthly_income"] = totals.TotalIncome
	stats["monthly_expense"] = totals.TotalExpense

	// 4. Okupansi kamar
	var beds struct {
		Capacity int64
		Occupied int64
	}
	if err := r.db.Model(&model.Room{}).
		Select("COALESCE(SUM(capacity), 0) AS capacity, COALESCE(SUM(current_occupants), 0) AS occupied").
		Scan(&beds).Error; err != nil {
		return nil, err
	}
	stats["total_beds"] = beds.Capacity
	stats["occupied_beds"] = beds.Occupied

	return stats, nil
}
