package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/BarenJ/AplikasiPanti/internal/apperr"
	"github.com/BarenJ/AplikasiPanti/internal/model"
	"github.com/BarenJ/AplikasiPanti/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type RoomInput struct {
	RoomName string `json:"room_name" validate:"required"`
	RoomType string `json:"room_type" validate:"required,oneof=private shared special"`
	Capacity int    `json:"capacity" validate:"gte=1"`
	Notes    string `json:"notes"`
	Status   string `json:"status" validate:"omitempty,oneof=available occupied maintenance reserved"`
}

// RoomView adalah kamar dengan jumlah penghuni yang dihitung langsung dari tabel residents.
type RoomView struct {
	model.Room
	ResidentCount int64    `json:"resident_count"`
	ResidentNames []string `json:"resident_names"`
	AvailableBeds int64    `json:"available_beds"`
	IsAvailable   bool     `json:"is_available"`
}

type OccupancyRow struct {
	RoomName         string   `json:"room_name"`
	RoomType         string   `json:"room_type"`
	Capacity         int      `json:"capacity"`
	CurrentOccupants int64    `json:"current_occupants"`
	AvailableBeds    int64    `json:"available_beds"`
	OccupancyStatus  string   `json:"occupancy_status"`
	ResidentNames    []string `json:"resident_names"`
}

// Correction dicatat setiap kali rekonsiliasi memperbaiki counter kamar.
type Correction struct {
	RoomID   uint   `json:"room_id"`
	RoomName string `json:"room_name"`
	Stored   int    `json:"stored"`
	Actual   int    `json:"actual"`
}

type RoomUsecase struct {
	db        *gorm.DB
	rooms     repository.RoomRepository
	residents repository.ResidentRepository
	log       *zap.Logger
}

func NewRoomUsecase(db *gorm.DB, rooms repository.RoomRepository, residents repository.ResidentRepository, log *zap.Logger) *RoomUsecase {
	return &RoomUsecase{db: db, rooms: rooms, residents: residents, log: log}
}

func (u *RoomUsecase) List() ([]RoomView, error) {
	rooms, err := u.rooms.GetAll()
	if err != nil {
		return nil, wrapErr(err)
	}
	counts, err := u.rooms.ResidentCounts()
	if err != nil {
		return nil, wrapErr(err)
	}
	occupants, err := u.rooms.Occupants("")
	if err != nil {
		return nil, wrapErr(err)
	}
	names := groupNames(occupants)

	views := make([]RoomView, 0, len(rooms))
	for _, room := range rooms {
		count := counts[room.ID]
		free := int64(room.Capacity) - count
		if free < 0 {
			free = 0
		}
		views = append(views, RoomView{
			Room:          room,
			ResidentCount: count,
			ResidentNames: nonNil(names[room.ID]),
			AvailableBeds: free,
			IsAvailable:   room.Status == model.RoomAvailable && free > 0,
		})
	}
	return views, nil
}

func (u *RoomUsecase) ListAvailable() ([]RoomView, error) {
	all, err := u.List()
	if err != nil {
		return nil, err
	}
	available := make([]RoomView, 0, len(all))
	for _, v := range all {
		if v.IsAvailable {
			available = append(available, v)
		}
	}
	return available, nil
}

func (u *RoomUsecase) Create(in RoomInput) (*model.Room, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	room := model.Room{
		RoomName: strings.TrimSpace(in.RoomName),
		RoomType: in.RoomType,
		Capacity: in.Capacity,
		Notes:    in.Notes,
		Status:   orDefault(in.Status, model.RoomAvailable),
	}
	if err := u.rooms.Create(&room); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict(fmt.Sprintf("Nama kamar %s sudah digunakan", room.RoomName))
		}
		return nil, wrapErr(err)
	}
	return &room, nil
}

// Update menolak kapasitas di bawah jumlah penghuni saat ini.
func (u *RoomUsecase) Update(ctx context.Context, id uint, in RoomInput) (*model.Room, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	var room *model.Room
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rooms := u.rooms.WithTx(tx)
		var err error
		room, err = rooms.FindByIDForUpdate(id)
		if err != nil {
			return notFoundAs(err, "Kamar tidak ditemukan")
		}
		count, err := rooms.CountResidents(id)
		if err != nil {
			return err
		}
		if int64(in.Capacity) < count {
			return apperr.Conflict(fmt.Sprintf("Kapasitas tidak boleh kurang dari jumlah penghuni (%d)", count))
		}

		room.RoomName = strings.TrimSpace(in.RoomName)
		room.RoomType = in.RoomType
		room.Capacity = in.Capacity
		room.Notes = in.Notes
		room.Status = orDefault(in.Status, room.Status)
		return rooms.Update(room)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, apperr.Conflict(fmt.Sprintf("Nama kamar %s sudah digunakan", in.RoomName))
	}
	if err != nil {
		return nil, wrapErr(err)
	}
	return room, nil
}

// Delete ditolak selama masih ada resident yang menempati kamar.
func (u *RoomUsecase) Delete(ctx context.Context, id uint) error {
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rooms := u.rooms.WithTx(tx)
		if _, err := rooms.FindByIDForUpdate(id); err != nil {
			return notFoundAs(err, "Kamar tidak ditemukan")
		}
		count, err := rooms.CountResidents(id)
		if err != nil {
			return err
		}
		if count > 0 {
			return apperr.Conflict(fmt.Sprintf("Kamar masih ditempati %d resident", count))
		}
		return rooms.Delete(id)
	})
	return wrapErr(err)
}

// AssignRoom memindahkan resident ke kamar baru (nil = lepas kamar).
// Kamar asal selalu diambil dari data resident; previousRoomID dari klien hanya dicocokkan.
func (u *RoomUsecase) AssignRoom(ctx context.Context, residentID uint, roomID, previousRoomID *uint) (*model.Resident, error) {
	var res *model.Resident
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		residents := u.residents.WithTx(tx)
		var err error
		res, err = residents.FindByID(residentID)
		if err != nil {
			return notFoundAs(err, "Resident tidak ditemukan")
		}
		if previousRoomID != nil && !sameRoom(previousRoomID, res.RoomID) {
			u.log.Warn("previous_room_id dari klien berbeda dengan data resident",
				zap.Uint("resident_id", residentID),
				zap.Uintp("client_previous_room_id", previousRoomID),
				zap.Uintp("stored_room_id", res.RoomID),
			)
		}
		return moveResident(u.rooms.WithTx(tx), residents, res, roomID)
	})
	if err != nil {
		return nil, wrapErr(err)
	}
	return res, nil
}

// OccupancyReport hanya menghitung resident berstatus Aktif.
func (u *RoomUsecase) OccupancyReport() ([]OccupancyRow, error) {
	rooms, err := u.rooms.GetAll()
	if err != nil {
		return nil, wrapErr(err)
	}
	occupants, err := u.rooms.Occupants(model.ResidentAktif)
	if err != nil {
		return nil, wrapErr(err)
	}
	names := groupNames(occupants)

	report := make([]OccupancyRow, 0, len(rooms))
	for _, room := range rooms {
		count := int64(len(names[room.ID]))
		status := "partially_occupied"
		switch {
		case count == 0:
			status = "empty"
		case count >= int64(room.Capacity):
			status = "full"
		}
		report = append(report, OccupancyRow{
			RoomName:         room.RoomName,
			RoomType:         room.RoomType,
			Capacity:         room.Capacity,
			CurrentOccupants: count,
			AvailableBeds:    int64(room.Capacity) - count,
			OccupancyStatus:  status,
			ResidentNames:    nonNil(names[room.ID]),
		})
	}
	return report, nil
}

// ReconcileOccupancy menyamakan current_occupants setiap kamar dengan jumlah resident sebenarnya.
func (u *RoomUsecase) ReconcileOccupancy(ctx context.Context) ([]Correction, error) {
	var corrections []Correction
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rooms := u.rooms.WithTx(tx)
		all, err := rooms.GetAll()
		if err != nil {
			return err
		}
		counts, err := rooms.ResidentCounts()
		if err != nil {
			return err
		}
		for _, room := range all {
			actual := int(counts[room.ID])
			if room.CurrentOccupants == actual {
				continue
			}
			if err := rooms.SetOccupants(room.ID, actual); err != nil {
				return err
			}
			corrections = append(corrections, Correction{
				RoomID: room.ID, RoomName: room.RoomName, Stored: room.CurrentOccupants, Actual: actual,
			})
		}
		return nil
	})
	if err != nil {
		return nil, wrapErr(err)
	}

	for _, c := range corrections {
		u.log.Warn("counter penghuni kamar diperbaiki",
			zap.Uint("room_id", c.RoomID),
			zap.String("room_name", c.RoomName),
			zap.Int("stored", c.Stored),
			zap.Int("actual", c.Actual),
		)
	}
	return corrections, nil
}

func groupNames(rows []repository.RoomOccupant) map[uint][]string {
	names := make(map[uint][]string)
	for _, row := range rows {
		names[row.RoomID] = append(names[row.RoomID], row.Name)
	}
	return names
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
