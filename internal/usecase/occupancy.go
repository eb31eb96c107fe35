package usecase

import (
	"fmt"

	"github.com/BarenJ/AplikasiPanti/internal/apperr"
	"github.com/BarenJ/AplikasiPanti/internal/model"
	"github.com/BarenJ/AplikasiPanti/internal/repository"
)

func sameRoom(a, b *uint) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// moveResident memindahkan resident ke newRoomID (nil = lepas kamar) dan menjaga
// current_occupants tetap sama dengan jumlah resident per kamar.
// Kedua repository harus terikat pada transaksi yang sama.
func moveResident(rooms repository.RoomRepository, residents repository.ResidentRepository, res *model.Resident, newRoomID *uint) error {
	if sameRoom(res.RoomID, newRoomID) {
		return nil
	}

	// 1. Kunci kamar tujuan dan cek kapasitas dari jumlah penghuni sebenarnya
	if newRoomID != nil {
		room, err := rooms.FindByIDForUpdate(*newRoomID)
		if err != nil {
			return notFoundAs(err, "Kamar tidak ditemukan")
		}
		count, err := rooms.CountResidents(room.ID)
		if err != nil {
			return err
		}
		if count >= int64(room.Capacity) {
			return apperr.CapacityExceeded(fmt.Sprintf("Kamar %s sudah penuh (%d/%d)", room.RoomName, count, room.Capacity))
		}
	}

	// 2. Kurangi kamar lama
	if res.RoomID != nil {
		if err := rooms.DecrementOccupants(*res.RoomID); err != nil {
			return err
		}
	}

	// 3. Pindahkan resident
	if err := residents.SetRoom(res.ID, newRoomID); err != nil {
		return err
	}

	// 4. Tambah kamar baru
	if newRoomID != nil {
		if err := rooms.IncrementOccupants(*newRoomID); err != nil {
			return err
		}
	}

	res.RoomID = newRoomID
	return nil
}
