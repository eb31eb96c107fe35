package repository

import (
	"github.com/BarenJ/AplikasiPanti/internal/model"

	"gorm.io/gorm"
)

type ReferenceRepository interface {
	ActivityTypes() ([]model.ActivityType, error)
	DonationCategories() ([]model.DonationCategory, error)
	FindActivityType(id uint) (*model.ActivityType, error)
	FindCategory(id uint) (*model.DonationCategory, error)
}

type referenceRepository struct {
	db *gorm.DB
}

func NewReferenceRepository(db *gorm.DB) ReferenceRepository {
	return &referenceRepository{db}
}

func (r *referenceRepository) ActivityTypes() ([]model.ActivityType, error) {
	var types []model.ActivityType
	err := r.db.Order("category ASC").Order("name ASC").Find(&types).Error
	return types, err
}

func (r *referenceRepository) DonationCategories() ([]model.DonationCategory, error) {
	var categories []model.DonationCategory
	err := r.db.Order("type DESC").Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *referenceRepository) FindActivityType(id uint) (*model.ActivityType, error) {
	var t model.ActivityType
	err := r.db.First(&t, id).Error
	return &t, err
}

func (r *referenceRepository) FindCategory(id uint) (*model.DonationCategory, error) {
	var c model.DonationCategory
	err := r.db.First(&c, id).Error
	return &c, err
}
