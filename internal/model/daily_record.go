package model

import "time"

const (
	RecordBaik       = "Baik"
	RecordCukupBaik  = "Cukup Baik"
	RecordKurangBaik = "Kurang Baik"
)

type DailyRecord struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	ResidentID     uint      `json:"resident_id" gorm:"not null;index"`
	ActivityTypeID uint      `json:"activity_type_id" gorm:"not null"`
	RecordDatetime string    `json:"record_datetime" gorm:"size:19;not null;index:idx_daily_records_date"`
	Condition      string    `json:"condition" gorm:"column:record_condition;size:20;not null"`
	Notes          string    `json:"notes" gorm:"type:text;not null"`
	RecordedBy     string    `json:"recorded_by" gorm:"size:100"`
	CreatedAt      time.Time `json:"created_at"`

	Resident     *Resident     `json:"-" gorm:"foreignKey:ResidentID"`
	ActivityType *ActivityType `json:"-" gorm:"foreignKey:ActivityTypeID"`
}
