package repository

import (
	"github.com/BarenJ/AplikasiPanti/internal/model"

	"gorm.io/gorm"
)

type ResidentFilter struct {
	Search string
	Status string
	Gender string
}

type ResidentRepository interface {
	WithTx(tx *gorm.DB) ResidentRepository
	Create(resident *model.Resident) error
	CreateGuardians(guardians []model.Guardian) error
	CreateMedications(medications []model.Medication) error
	CreateHealthRecord(record *model.HealthRecord) error
	FindByID(id uint) (*model.Resident, error)
	FindDetail(id uint) (*model.Resident, error)
	LatestHealthRecord(residentID uint, recordType string) (*model.HealthRecord, error)
	GetAll(filter ResidentFilter) ([]model.Resident, error)
	UpdateProfile(resident *model.Resident) error
	SetRoom(id uint, roomID *uint) error
	Delete(id uint) error
	Count() (int64, error)
}

type residentRepository struct {
	db *gorm.DB
}

func NewResidentRepository(db *gorm.DB) ResidentRepository {
	return &residentRepository{db}
}

func (r *residentRepository) WithTx(tx *gorm.DB) ResidentRepository {
	return &residentRepository{tx}
}

func (r *residentRepository) Create(resident *model.Resident) error {
	return r.db.Omit("Room", "Guardians", "Medications", "HealthRecords").Create(resident).Error
}

func (r *residentRepository) CreateGuardians(guardians []model.Guardian) error {
	if len(guardians) == 0 {
		return nil
	}
	return r.db.Create(&guardians).Error
}

func (r *residentRepository) CreateMedications(medications []model.Medication) error {
	if len(medications) == 0 {
		return nil
	}
	return r.db.Create(&medications).Error
}

func (r *residentRepository) CreateHealthRecord(record *model.HealthRecord) error {
	return r.db.Create(record).Error
}

func (r *residentRepository) FindByID(id uint) (*model.Resident, error) {
	var resident model.Resident
	err := r.db.First(&resident, id).Error
	return &resident, err
}

// FindDetail memuat kamar, wali (utama lebih dulu) dan obat.
func (r *residentRepository) FindDetail(id uint) (*model.Resident, error) {
	var resident model.Resident
	err := r.db.Preload("Room").
		Preload("Guardians", func(db *gorm.DB) *gorm.DB {
			return db.Order("is_primary DESC").Order("id ASC")
		}).
		Preload("Medications", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&resident, id).Error
	return &resident, err
}

func (r *residentRepository) LatestHealthRecord(residentID uint, recordType string) (*model.HealthRecord, error) {
	var records []model.HealthRecord
	err := r.db.Where("resident_id = ? AND record_type = ?", residentID, recordType).
		Order("recorded_date DESC").Order("id DESC").
		Limit(1).
		Find(&records).Error
	if err != nil || len(records) == 0 {
		return nil, err
	}
	return &records[0], nil
}

func (r *residentRepository) GetAll(filter ResidentFilter) ([]model.Resident, error) {
	var residents []model.Resident
	query := r.db.Preload("Room")

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Gender != "" {
		query = query.Where("gender = ?", filter.Gender)
	}
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR resident_id LIKE ?", searchPattern, searchPattern)
	}

	err := query.Order("name ASC").Order("id ASC").Find(&residents).Error
	return residents, err
}

var profileColumns = []string{
	"name", "age", "gender", "birth_date", "birth_place", "address", "religion", "join_date",
	"health_condition", "medical_history", "allergies", "smoking", "alcohol",
	"functional_walking", "functional_eating", "mental_emotion", "mental_consciousness",
	"photo_path", "audio_path", "status", "updated_at",
}

// UpdateProfile tidak menyentuh room_id; perpindahan kamar lewat SetRoom.
func (r *residentRepository) UpdateProfile(resident *model.Resident) error {
	return r.db.Model(resident).Select(profileColumns).Updates(resident).Error
}

func (r *residentRepository) SetRoom(id uint, roomID *uint) error {
	return r.db.Model(&model.Resident{}).Where("id = ?", id).Update("room_id", roomID).Error
}

// Delete menghapus resident beserta seluruh data turunannya.
func (r *residentRepository) Delete(id uint) error {
	for _, dependent := range []interface{}{
		&model.Guardian{}, &model.Medication{}, &model.HealthRecord{}, &model.DailyRecord{},
	} {
		if err := r.db.Where("resident_id = ?", id).Delete(dependent).Error; err != nil {
			return err
		}
	}
	res := r.db.Delete(&model.Resident{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *residentRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Resident{}).Count(&count).Error
	return count, err
}
