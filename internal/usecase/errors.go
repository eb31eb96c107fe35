package usecase

import (
	"errors"
	"fmt"

	"github.com/BarenJ/AplikasiPanti/internal/apperr"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxCodeAttempts = 5

// wrapErr memetakan error repository ke taksonomi apperr.
func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("Data tidak ditemukan")
	}
	return apperr.Internal(err)
}

// withCodeRetry mengulang seluruh transaksi bila kode yang dibuat bentrok dengan unique index.
// Sebelum mengulang, resync menaikkan counter melewati kode yang sudah terpakai.
func withCodeRetry(log *zap.Logger, resync func() error, fn func() error) error {
	var err error
	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		err = fn()
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		log.Warn("kode bentrok, counter disinkronkan lalu transaksi diulang", zap.Int("attempt", attempt), zap.Error(err))
		if attempt == maxCodeAttempts {
			break
		}
		if rerr := resync(); rerr != nil {
			return rerr
		}
	}
	return apperr.Internal(fmt.Errorf("kode unik gagal dibuat setelah %d percobaan: %w", maxCodeAttempts, err))
}

func notFoundAs(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(msg)
	}
	return err
}
