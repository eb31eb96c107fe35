package repository

import (
	"time"

	"github.com/BarenJ/AplikasiPanti/internal/model"

	"gorm.io/gorm"
)

// DailyRecordView adalah catatan harian yang sudah digabung dengan nama resident dan jenis aktivitas.
type DailyRecordView struct {
	ID             uint      `json:"id"`
	ResidentID     uint      `json:"resident_id"`
	ActivityTypeID uint      `json:"activity_type_id"`
	RecordDatetime string    `json:"record_datetime"`
	Condition      string    `json:"condition" gorm:"column:record_condition"`
	Notes          string    `json:"notes"`
	RecordedBy     string    `json:"recorded_by"`
	CreatedAt      time.Time `json:"created_at"`
	ResidentName   string    `json:"resident_name"`
	Gender         string    `json:"gender"`
	ResidentType   string    `json:"resident_type"`
	ActivityName   string    `json:"activity_name"`
	ActivityIcon   string    `json:"activity_icon"`
	ActivityColor  string    `json:"activity_color"`
}

type DailyRecordFilter struct {
	ResidentID     uint
	DateFrom       string
	DateTo         string
	ActivityTypeID uint
	Limit          int
}

type DailyRecordRepository interface {
	Create(record *model.DailyRecord) error
	FindByID(id uint) (*model.DailyRecord, error)
	Delete(id uint) error
	GetAll(filter DailyRecordFilter) ([]DailyRecordView, error)
	CountOnDate(date string) (int64, error)
}

type dailyRecordRepository struct {
	db *gorm.DB
}

func NewDailyRecordRepository(db *gorm.DB) DailyRecordRepository {
	return &dailyRecordRepository{db}
}

func (r *dailyRecordRepository) Create(record *model.DailyRecord) error {
	return r.db.Omit("Resident", "ActivityType").Create(record).Error
}

func (r *dailyRecordRepository) FindByID(id uint) (*model.DailyRecord, error) {
	var record model.DailyRecord
	err := r.db.First(&record, id).Error
	return &record, err
}

func (r *dailyRecordRepository) Delete(id uint) error {
	res := r.db.Delete(&model.DailyRecord{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetAll: rentang tanggal inklusif pada bagian tanggal dari record_datetime, terbaru lebih dulu.
func (r *dailyRecordRepository) GetAll(filter DailyRecordFilter) ([]DailyRecordView, error) {
	var records []DailyRecordView
	query := r.db.Table("daily_records AS dr").
		Select(`dr.id, dr.resident_id, dr.activity_type_id, dr.record_datetime, dr.record_condition,
			dr.notes, dr.recorded_by, dr.created_at,
			res.name AS resident_name, res.gender,
			CASE WHEN res.gender = 'male' THEN 'Opa' ELSE 'Oma' END AS resident_type,
			COALESCE(act.name, '') AS activity_name,
			COALESCE(act.icon, '') AS activity_icon,
			COALESCE(act.color_code, '') AS activity_color`).
		Joins("JOIN residents res ON res.id = dr.resident_id").
		Joins("LEFT JOIN activity_types act ON act.id = dr.activity_type_id")

	if filter.ResidentID != 0 {
		query = query.Where("dr.resident_id = ?", filter.ResidentID)
	}
	if filter.DateFrom != "" {
		query = query.Where("SUBSTR(dr.record_datetime, 1, 10) >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		query = query.Where("SUBSTR(dr.record_datetime, 1, 10) <= ?", filter.DateTo)
	}
	if filter.ActivityTypeID != 0 {
		query = query.Where("dr.activity_type_id = ?", filter.ActivityTypeID)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	err := query.Order("dr.record_datetime DESC").Order("dr.id DESC").Scan(&records).Error
	return records, err
}

func (r *dailyRecordRepository) CountOnDate(date string) (int64, error) {
	var count int64
	err := r.db.Model(&model.DailyRecord{}).
		Where("SUBSTR(record_datetime, 1, 10) = ?", date).
		Count(&count).Error
	return count, err
}
