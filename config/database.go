package config

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ConnectDB membuka koneksi sesuai DB_DRIVER.
// Contoh DSN mysql: root:@tcp(127.0.0.1:3306)/panti?charset=utf8mb4&parseTime=True&loc=Local
func ConnectDB(cfg *Config, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "mysql":
		dialector = mysql.Open(cfg.DBDSN)
	case "postgres":
		dialector = postgres.Open(cfg.DBDSN)
	case "sqlite", "":
		dialector = sqlite.Open(cfg.DBDSN + "?_foreign_keys=on&_busy_timeout=5000")
	default:
		return nil, fmt.Errorf("DB_DRIVER tidak dikenal: %s", cfg.DBDriver)
	}

	gormLevel := gormlogger.Warn
	if cfg.IsDevelopment() {
		gormLevel = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("gagal koneksi ke database: %w", err)
	}

	if cfg.DBDriver == "sqlite" || cfg.DBDriver == "" {
		// sqlite hanya mengizinkan satu penulis
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	log.Info("koneksi database berhasil", zap.String("driver", cfg.DBDriver))
	return db, nil
}
