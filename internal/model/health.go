package model

import "time"

const (
	RecordHematology    = "hematology"
	RecordBloodSugar    = "blood_sugar"
	RecordBloodPressure = "blood_pressure"
	RecordGeneral       = "general"
	RecordInitial       = "initial"

	MedicationActive    = "Active"
	MedicationCompleted = "Completed"
	MedicationStopped   = "Stopped"
	MedicationChanged   = "Changed"
)

type Guardian struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	ResidentID       uint      `json:"resident_id" gorm:"not null;index:idx_guardians_resident"`
	Name             string    `json:"name" gorm:"size:150;not null"`
	IDNumber         string    `json:"id_number" gorm:"size:30"`
	Email            string    `json:"email" gorm:"size:100"`
	Phone            string    `json:"phone" gorm:"size:30;not null"`
	Relationship     string    `json:"relationship" gorm:"size:50"`
	Address          string    `json:"address" gorm:"type:text"`
	IsPrimary        bool      `json:"is_primary"`
	EmergencyContact bool      `json:"emergency_contact"`
	CreatedAt        time.Time `json:"created_at"`
}

type Medication struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	ResidentID        uint      `json:"resident_id" gorm:"not null;index:idx_medications_resident"`
	MedicationName    string    `json:"medication_name" gorm:"size:150;not null"`
	Dosage            string    `json:"dosage" gorm:"size:100"`
	Schedule          string    `json:"schedule" gorm:"size:100"`
	StartDate         string    `json:"start_date" gorm:"size:10"`
	EndDate           string    `json:"end_date" gorm:"size:10"`
	PrescribingDoctor string    `json:"prescribing_doctor" gorm:"size:100"`
	Pharmacy          string    `json:"pharmacy" gorm:"size:100"`
	Notes             string    `json:"notes" gorm:"type:text"`
	Status            string    `json:"status" gorm:"size:20;default:Active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// HealthRecord adalah log pemeriksaan (append-only), dibaca terbaru per record_type.
type HealthRecord struct {
	ID                uint     `json:"id" gorm:"primaryKey"`
	ResidentID        uint     `json:"resident_id" gorm:"not null;index:idx_health_records_resident"`
	RecordType        string   `json:"record_type" gorm:"size:20;not null;index:idx_health_records_type"`
	Hemoglobin        string   `json:"hemoglobin" gorm:"size:20"`
	Leukocyte         string   `json:"leukocyte" gorm:"size:20"`
	Erythrocyte       string   `json:"erythrocyte" gorm:"size:20"`
	BloodSugarRandom  string   `json:"blood_sugar_random" gorm:"size:20"`
	BloodSugarFasting string   `json:"blood_sugar_fasting" gorm:"size:20"`
	BloodSugarTwoHour string   `json:"blood_sugar_two_hour" gorm:"size:20"`
	Systolic          *int     `json:"systolic"`
	Diastolic         *int     `json:"diastolic"`
	HeartRate         *int     `json:"heart_rate"`
	Temperature       *float64 `json:"temperature"`
	Weight            *float64 `json:"weight"`
	Height            *float64 `json:"height"`
	BMI               *float64 `json:"bmi" gorm:"column:bmi"`
	Notes             string   `json:"notes" gorm:"type:text"`
	RecordedDate      string   `json:"recorded_date" gorm:"size:10;not null"`
	RecordedBy        string   `json:"recorded_by" gorm:"size:100;default:system"`
}

func ValidRecordType(t string) bool {
	switch t {
	case RecordHematology, RecordBloodSugar, RecordBloodPressure, RecordGeneral, RecordInitial:
		return true
	}
	return false
}
