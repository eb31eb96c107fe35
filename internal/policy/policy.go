// Package policy adalah satu-satunya tabel hak akses per role.
package policy

import "github.com/BarenJ/AplikasiPanti/internal/model"

const (
	Residents    = "residents"
	Rooms        = "rooms"
	Records      = "records"
	Transactions = "transactions"
	Users        = "users"
	Reference    = "reference"
	Dashboard    = "dashboard"
)

const (
	Read   = "read"
	Create = "create"
	Update = "update"
	Delete = "delete"
	Assign = "assign"
	Export = "export"
)

type grant map[string][]string

// Staff, dokter dan perawat: data penghuni dan kamar tanpa hapus, tanpa keuangan dan user.
var careTeam = grant{
	Residents: {Read, Create, Update},
	Rooms:     {Read, Create, Update, Assign},
	Records:   {Read, Create},
	Reference: {Read},
	Dashboard: {Read},
}

var grants = map[string]grant{
	model.RoleStaff:  careTeam,
	model.RoleDoctor: careTeam,
	model.RoleNurse:  careTeam,
}

// CanAccess: admin boleh semua; role lain sesuai tabel; role tak dikenal ditolak.
func CanAccess(role, resource, action string) bool {
	if role == model.RoleAdmin {
		return true
	}
	g, ok := grants[role]
	if !ok {
		return false
	}
	for _, a := range g[resource] {
		if a == action {
			return true
		}
	}
	return false
}
