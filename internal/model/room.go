package model

import "time"

const (
	RoomPrivate = "private"
	RoomShared  = "shared"
	RoomSpecial = "special"

	RoomAvailable   = "available"
	RoomOccupied    = "occupied"
	RoomMaintenance = "maintenance"
	RoomReserved    = "reserved"
)

// Room menyimpan counter current_occupants yang harus sama dengan jumlah resident ber-room_id ini.
type Room struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	RoomName         string    `json:"room_name" gorm:"size:50;uniqueIndex;not null"`
	RoomType         string    `json:"room_type" gorm:"size:20;not null"`
	Capacity         int       `json:"capacity" gorm:"not null;default:1"`
	CurrentOccupants int       `json:"current_occupants" gorm:"not null;default:0"`
	Notes            string    `json:"notes" gorm:"type:text"`
	Status           string    `json:"status" gorm:"size:20;default:available"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
