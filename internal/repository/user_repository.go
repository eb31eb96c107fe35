package repository

import (
	"time"

	"github.com/BarenJ/AplikasiPanti/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) GetAll() ([]model.User, error) {
	var users []model.User
	err := r.db.Order("role ASC").Order("username ASC").Find(&users).Error
	return users, err
}

func (r *UserRepository) GetByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.db.Where("username = ?", username).First(&user).Error
	return &user, err
}

func (r *UserRepository) GetByID(id uint) (*model.User, error) {
	var user model.User
	err := r.db.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) Delete(id uint) error {
	res := r.db.Delete(&model.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(id uint, hash string) error {
	res := r.db.Model(&model.User{}).Where("id = ?", id).Update("password_hash", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *UserRepository) TouchLastLogin(id uint, at time.Time) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Update("last_login", at).Error
}

// FirstAdminID adalah admin dengan id terkecil; akun ini tidak boleh dihapus.
func (r *UserRepository) FirstAdminID() (uint, error) {
	var user model.User
	err := r.db.Where("role = ?", model.RoleAdmin).Order("id ASC").First(&user).Error
	return user.ID, err
}
