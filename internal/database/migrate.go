package database

import (
	"fmt"
	"strings"

	"github.com/BarenJ/AplikasiPanti/internal/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Urutan penting: tabel yang direferensikan dibuat lebih dulu.
var tables = []interface{}{
	&model.Room{},
	&model.Resident{},
	&model.Guardian{},
	&model.Medication{},
	&model.HealthRecord{},
	&model.ActivityType{},
	&model.DailyRecord{},
	&model.DonationCategory{},
	&model.Transaction{},
	&model.User{},
	&model.IDSequence{},
}

type patch struct {
	model interface{}
	name  string
}

// Kolom yang ditambahkan setelah skema awal.
var columnPatches = []patch{
	{&model.Resident{}, "RoomID"},
	{&model.Resident{}, "FunctionalWalking"},
	{&model.Resident{}, "FunctionalEating"},
	{&model.Resident{}, "MentalEmotion"},
	{&model.Resident{}, "MentalConsciousness"},
	{&model.Resident{}, "PhotoPath"},
	{&model.Resident{}, "AudioPath"},
	{&model.Medication{}, "EndDate"},
	{&model.Medication{}, "PrescribingDoctor"},
	{&model.Medication{}, "Pharmacy"},
	{&model.Medication{}, "Notes"},
	{&model.HealthRecord{}, "Systolic"},
	{&model.HealthRecord{}, "Diastolic"},
	{&model.HealthRecord{}, "HeartRate"},
	{&model.HealthRecord{}, "Temperature"},
	{&model.HealthRecord{}, "Weight"},
	{&model.HealthRecord{}, "Height"},
	{&model.HealthRecord{}, "BMI"},
	{&model.HealthRecord{}, "Notes"},
	{&model.Transaction{}, "AttachmentPath"},
	{&model.User{}, "LastLogin"},
}

// Index tambahan, termasuk unique index kode yang menjadi pengaman generator ID.
var indexPatches = []patch{
	{&model.Resident{}, "ResidentCode"},
	{&model.Resident{}, "idx_residents_name"},
	{&model.Resident{}, "idx_residents_status"},
	{&model.Resident{}, "RoomID"},
	{&model.Guardian{}, "idx_guardians_resident"},
	{&model.Medication{}, "idx_medications_resident"},
	{&model.HealthRecord{}, "idx_health_records_resident"},
	{&model.HealthRecord{}, "idx_health_records_type"},
	{&model.DailyRecord{}, "idx_daily_records_date"},
	{&model.Transaction{}, "TransactionCode"},
	{&model.Transaction{}, "idx_transactions_date"},
}

// Migrate bersifat idempotent: aman dijalankan setiap kali boot.
// Kondisi "sudah ada" hanya dicatat, error DDL lain menghentikan startup.
func Migrate(db *gorm.DB, log *zap.Logger) error {
	m := db.Migrator()

	// 1. Buat tabel yang belum ada
	for _, t := range tables {
		name := tableName(db, t)
		if m.HasTable(t) {
			log.Debug("tabel sudah ada", zap.String("table", name))
			continue
		}
		if err := m.CreateTable(t); err != nil {
			if alreadyExists(err) {
				log.Info("tabel sudah ada", zap.String("table", name), zap.Error(err))
				continue
			}
			return fmt.Errorf("create table %s: %w", name, err)
		}
		log.Info("tabel dibuat", zap.String("table", name))
	}

	// 2. Tambah kolom baru pada tabel lama
	for _, p := range columnPatches {
		name := tableName(db, p.model)
		if m.HasColumn(p.model, p.name) {
			continue
		}
		if err := m.AddColumn(p.model, p.name); err != nil {
			if alreadyExists(err) {
				log.Info("kolom sudah ada", zap.String("table", name), zap.String("column", p.name))
				continue
			}
			return fmt.Errorf("add column %s.%s: %w", name, p.name, err)
		}
		log.Info("kolom ditambahkan", zap.String("table", name), zap.String("column", p.name))
	}

	// 3. Index
	for _, p := range indexPatches {
		name := tableName(db, p.model)
		if m.HasIndex(p.model, p.name) {
			continue
		}
		if err := m.CreateIndex(p.model, p.name); err != nil {
			if alreadyExists(err) {
				log.Info("index sudah ada", zap.String("table", name), zap.String("index", p.name))
				continue
			}
			return fmt.Errorf("create index %s on %s: %w", p.name, name, err)
		}
		log.Info("index dibuat", zap.String("table", name), zap.String("index", p.name))
	}

	return nil
}

func alreadyExists(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "already exists") ||
		strings.Contains(msg, "duplicate column") ||
		strings.Contains(msg, "duplicate key name")
}

func tableName(db *gorm.DB, value interface{}) string {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(value); err != nil {
		return fmt.Sprintf("%T", value)
	}
	return stmt.Schema.Table
}
