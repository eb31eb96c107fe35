package repository

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/BarenJ/AplikasiPanti/internal/apperr"
	"github.com/BarenJ/AplikasiPanti/internal/model"

	"gorm.io/gorm"
)

const (
	PrefixResident = "R"
	PrefixIncome   = "INC"
	PrefixExpense  = "EXP"
)

type codeSource struct {
	table  string
	column string
}

// Tabel asal kode per prefix, dipakai saat counter belum ada.
var codeSources = map[string]codeSource{
	PrefixResident: {table: "residents", column: "resident_id"},
	PrefixIncome:   {table: "transactions", column: "transaction_id"},
	PrefixExpense:  {table: "transactions", column: "transaction_id"},
}

type SequenceRepository interface {
	WithTx(tx *gorm.DB) SequenceRepository
	NextCode(prefix string) (string, error)
	Resync(prefix string) error
}

type sequenceRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewSequenceRepository(db *gorm.DB) SequenceRepository {
	return &sequenceRepository{db: db, now: time.Now}
}

func (r *sequenceRepository) WithTx(tx *gorm.DB) SequenceRepository {
	return &sequenceRepository{db: tx, now: r.now}
}

// NextCode menaikkan counter prefix dan mengembalikan kode berikutnya, misal "R-007".
// Harus dipanggil di dalam transaksi yang juga menyimpan baris pemilik kode.
func (r *sequenceRepository) NextCode(prefix string) (string, error) {
	src, ok := codeSources[prefix]
	if !ok {
		return "", fmt.Errorf("prefix kode tidak dikenal: %s", prefix)
	}

	// 1. Naikkan counter (row lock sampai commit)
	res := r.db.Model(&model.IDSequence{}).
		Where("prefix = ?", prefix).
		Updates(map[string]interface{}{
			"last_value": gorm.Expr("last_value + 1"),
			"updated_at": r.now(),
		})
	if res.Error != nil {
		return "", res.Error
	}

	if res.RowsAffected == 0 {
		// 2. Counter belum ada: mulai dari kode terakhir yang tersimpan
		last, err := r.lastSuffix(prefix, src)
		if err != nil {
			return "", err
		}
		seq := model.IDSequence{Prefix: prefix, LastValue: last + 1, UpdatedAt: r.now()}
		if err := r.db.Create(&seq).Error; err != nil {
			return "", err
		}
		return FormatCode(prefix, seq.LastValue), nil
	}

	var seq model.IDSequence
	if err := r.db.Where("prefix = ?", prefix).First(&seq).Error; err != nil {
		return "", err
	}
	return FormatCode(prefix, seq.LastValue), nil
}

// Resync menaikkan counter ke kode tertinggi yang sudah tersimpan.
// Dipanggil di luar transaksi pembuat kode, setelah kode bentrok dengan unique index.
func (r *sequenceRepository) Resync(prefix string) error {
	src, ok := codeSources[prefix]
	if !ok {
		return fmt.Errorf("prefix kode tidak dikenal: %s", prefix)
	}
	highest, err := r.highestSuffix(prefix, src)
	if err != nil {
		return err
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.IDSequence{}).
			Where("prefix = ? AND last_value < ?", prefix, highest).
			Updates(map[string]interface{}{"last_value": highest, "updated_at": r.now()})
		if res.Error != nil || res.RowsAffected > 0 {
			return res.Error
		}

		var n int64
		if err := tx.Model(&model.IDSequence{}).Where("prefix = ?", prefix).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		return tx.Create(&model.IDSequence{Prefix: prefix, LastValue: highest, UpdatedAt: r.now()}).Error
	})
}

// highestSuffix mengurai semua kode ber-prefix sama dan mengembalikan angka terbesar.
func (r *sequenceRepository) highestSuffix(prefix string, src codeSource) (int, error) {
	var codes []string
	err := r.db.Table(src.table).
		Where(src.column+" LIKE ?", prefix+"-%").
		Pluck(src.column, &codes).Error
	if err != nil {
		return 0, err
	}
	highest := 0
	for _, code := range codes {
		n, err := ParseCodeSuffix(prefix, code)
		if err != nil {
			return 0, err
		}
		if n > highest {
			highest = n
		}
	}
	return highest, nil
}

// lastSuffix membaca baris terakhir (urut id) ber-prefix sama dan mengurai angkanya.
func (r *sequenceRepository) lastSuffix(prefix string, src codeSource) (int, error) {
	var codes []string
	err := r.db.Table(src.table).
		Where(src.column+" LIKE ?", prefix+"-%").
		Order("id DESC").
		Limit(1).
		Pluck(src.column, &codes).Error
	if err != nil {
		return 0, err
	}
	if len(codes) == 0 {
		return 0, nil
	}
	return ParseCodeSuffix(prefix, codes[0])
}

func FormatCode(prefix string, n int) string {
	return fmt.Sprintf("%s-%03d", prefix, n)
}

// ParseCodeSuffix gagal dengan DataIntegrityError bila kode tersimpan tidak berformat PREFIX-angka.
func ParseCodeSuffix(prefix, code string) (int, error) {
	suffix := strings.TrimPrefix(code, prefix+"-")
	n, err := strconv.Atoi(suffix)
	if err != nil || suffix == code || !onlyDigits(suffix) {
		return 0, apperr.DataIntegrity(fmt.Sprintf("Kode %q tidak valid untuk prefix %s", code, prefix))
	}
	return n, nil
}

func onlyDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s != ""
}
