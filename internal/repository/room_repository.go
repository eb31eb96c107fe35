package repository

import (
	"github.com/BarenJ/AplikasiPanti/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoomOccupant struct {
	RoomID uint
	Name   string
}

type RoomCount struct {
	RoomID uint
	Total  int64
}

type RoomRepository interface {
	WithTx(tx *gorm.DB) RoomRepository
	GetAll() ([]model.Room, error)
	FindByID(id uint) (*model.Room, error)
	FindByIDForUpdate(id uint) (*model.Room, error)
	Create(room *model.Room) error
	Update(room *model.Room) error
	Delete(id uint) error
	CountResidents(roomID uint) (int64, error)
	ResidentCounts() (map[uint]int64, error)
	Occupants(status string) ([]RoomOccupant, error)
	IncrementOccupants(id uint) error
	DecrementOccupants(id uint) error
	SetOccupants(id uint, n int) error
}

type roomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{db}
}

func (r *roomRepository) WithTx(tx *gorm.DB) RoomRepository {
	return &roomRepository{tx}
}

func (r *roomRepository) GetAll() ([]model.Room, error) {
	var rooms []model.Room
	err := r.db.Order("room_name ASC").Find(&rooms).Error
	return rooms, err
}

func (r *roomRepository) FindByID(id uint) (*model.Room, error) {
	var room model.Room
	err := r.db.First(&room, id).Error
	return &room, err
}

// FindByIDForUpdate mengunci baris kamar (SELECT ... FOR UPDATE) sampai transaksi selesai.
func (r *roomRepository) FindByIDForUpdate(id uint) (*model.Room, error) {
	var room model.Room
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, id).Error
	return &room, err
}

func (r *roomRepository) Create(room *model.Room) error {
	return r.db.Create(room).Error
}

func (r *roomRepository) Update(room *model.Room) error {
	return r.db.Model(room).
		Select("room_name", "room_type", "capacity", "notes", "status", "updated_at").
		Updates(room).Error
}

func (r *roomRepository) Delete(id uint) error {
	res := r.db.Delete(&model.Room{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *roomRepository) CountResidents(roomID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Resident{}).Where("room_id = ?", roomID).Count(&count).Error
	return count, err
}

// ResidentCounts menghitung ulang penghuni per kamar dari tabel residents.
func (r *roomRepository) ResidentCounts() (map[uint]int64, error) {
	var rows []RoomCount
	err := r.db.Model(&model.Resident{}).
		Select("room_id, COUNT(*) AS total").
		Where("room_id IS NOT NULL").
		Group("room_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.RoomID] = row.Total
	}
	return counts, nil
}

// Occupants mengembalikan nama penghuni per kamar, status kosong berarti semua status.
func (r *roomRepository) Occupants(status string) ([]RoomOccupant, error) {
	var rows []RoomOccupant
	query := r.db.Model(&model.Resident{}).
		Select("room_id, name").
		Where("room_id IS NOT NULL")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("name ASC").Scan(&rows).Error
	return rows, err
}

func (r *roomRepository) IncrementOccupants(id uint) error {
	return r.db.Model(&model.Room{}).Where("id = ?", id).
		UpdateColumn("current_occupants", gorm.Expr("current_occupants + 1")).Error
}

// DecrementOccupants tidak pernah membuat counter negatif.
func (r *roomRepository) DecrementOccupants(id uint) error {
	return r.db.Model(&model.Room{}).Where("id = ?", id).
		UpdateColumn("current_occupants",
			gorm.Expr("CASE WHEN current_occupants > 0 THEN current_occupants - 1 ELSE 0 END")).Error
}

func (r *roomRepository) SetOccupants(id uint, n int) error {
	return r.db.Model(&model.Room{}).Where("id = ?", id).
		UpdateColumn("current_occupants", n).Error
}
