package main

import (
	"fmt"
	"os"

	"github.com/BarenJ/AplikasiPanti/config"
	"github.com/BarenJ/AplikasiPanti/internal/database"
	"github.com/BarenJ/AplikasiPanti/internal/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env manual karena ini script terpisah
	envErr := godotenv.Load()
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, "panti-seeder")
	if err != nil {
		fmt.Fprintln(os.Stderr, "gagal membuat logger:", err)
		os.Exit(1)
	}
	defer log.Sync()
	if envErr != nil {
		log.Info("file .env tidak ditemukan, memakai environment variables sistem")
	}

	db, err := config.ConnectDB(cfg, log)
	if err != nil {
		log.Fatal("koneksi database gagal", zap.Error(err))
	}

	log.Info("menjalankan migrasi...")
	if err := database.Migrate(db, log); err != nil {
		log.Fatal("migrasi gagal", zap.Error(err))
	}

	log.Info("menjalankan SeedAll...")
	if err := database.SeedAll(db, log); err != nil {
		log.Fatal("seeding gagal", zap.Error(err))
	}
	log.Info("seeding selesai")
}
