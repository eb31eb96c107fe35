package model

import "time"

// IDSequence adalah counter monoton per prefix kode (R, INC, EXP).
type IDSequence struct {
	Prefix    string    `json:"prefix" gorm:"primaryKey;size:10"`
	LastValue int       `json:"last_value" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (IDSequence) TableName() string {
	return "id_sequences"
}
