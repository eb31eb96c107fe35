package model

import "time"

const (
	RoleAdmin  = "admin"
	RoleStaff  = "staff"
	RoleDoctor = "doctor"
	RoleNurse  = "nurse"
)

type User struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Username     string     `json:"username" gorm:"size:50;uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"`
	FullName     string     `json:"full_name" gorm:"size:150;not null"`
	Role         string     `json:"role" gorm:"size:10;not null"`
	Email        string     `json:"email" gorm:"size:100"`
	Phone        string     `json:"phone" gorm:"size:30"`
	IsActive     bool       `json:"is_active"`
	LastLogin    *time.Time `json:"last_login"`
	CreatedAt    time.Time  `json:"created_at"`
}

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleStaff, RoleDoctor, RoleNurse:
		return true
	}
	return false
}
