package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BarenJ/AplikasiPanti/config"
	"github.com/BarenJ/AplikasiPanti/internal/database"
	"github.com/BarenJ/AplikasiPanti/internal/handler"
	"github.com/BarenJ/AplikasiPanti/internal/job"
	"github.com/BarenJ/AplikasiPanti/internal/logger"
	"github.com/BarenJ/AplikasiPanti/internal/notifier"
	"github.com/BarenJ/AplikasiPanti/internal/routes"
	"github.com/BarenJ/AplikasiPanti/internal/session"
	"github.com/BarenJ/AplikasiPanti/internal/storage"
	"github.com/BarenJ/AplikasiPanti/internal/usecase"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const bodyLimit = 16 << 20

func main() {
	// 1. Load .env (opsional)
	envErr := godotenv.Load()
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, "panti-api")
	if err != nil {
		fmt.Fprintln(os.Stderr, "gagal membuat logger:", err)
		os.Exit(1)
	}
	defer log.Sync()
	if envErr != nil {
		log.Info("file .env tidak ditemukan, memakai environment variables sistem")
	}

	if err := run(cfg, log); err != nil {
		log.Fatal("aplikasi berhenti", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	// 2. Database: koneksi, migrasi, data awal
	db, err := config.ConnectDB(cfg, log)
	if err != nil {
		return err
	}
	if err := database.Migrate(db, log); err != nil {
		return fmt.Errorf("migrasi gagal: %w", err)
	}
	if err := database.SeedAll(db, log); err != nil {
		return fmt.Errorf("seeding gagal: %w", err)
	}

	// 3. Infrastruktur: session store, upload, notifikasi
	store, closeStore, err := sessionStore(cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()
	sessions := session.NewManager(cfg.JWTSecret, cfg.JWTTTL, store)

	files, err := storage.NewLocalStore(cfg.UploadDir, log)
	if err != nil {
		return err
	}

	svc := routes.NewServices(db, sessions, files, guardianNotifier(cfg, log), log)
	// notifikasi wali yang masih berjalan diselesaikan sebelum keluar
	defer svc.Records.WaitNotifications()

	reconciler, err := job.StartReconciler(svc.Rooms, cfg.ReconcileInterval, log)
	if err != nil {
		return fmt.Errorf("gagal menjalankan job rekonsiliasi: %w", err)
	}
	defer reconciler.Shutdown()

	// 4. HTTP
	app := fiber.New(fiber.Config{
		BodyLimit:    bodyLimit,
		ErrorHandler: handler.ErrorHandler(log, cfg.IsDevelopment()),
	})
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(fiberlogger.New())

	// Berkas upload bisa dibuka via http://localhost:3000/uploads/...
	app.Static(storage.PublicPrefix, cfg.UploadDir)

	routes.Setup(app, svc)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("mematikan server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("shutdown server gagal", zap.Error(err))
		}
	}()

	log.Info("server siap", zap.String("port", cfg.AppPort), zap.String("db_driver", cfg.DBDriver))
	return app.Listen(":" + cfg.AppPort)
}

// sessionStore memakai Redis bila REDIS_ADDR diisi, selain itu disimpan di memori proses.
func sessionStore(cfg *config.Config, log *zap.Logger) (session.Store, func(), error) {
	if cfg.RedisAddr == "" {
		log.Info("session store: memory")
		return session.NewMemoryStore(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("redis tidak dapat dihubungi (%s): %w", cfg.RedisAddr, err)
	}
	log.Info("session store: redis", zap.String("addr", cfg.RedisAddr))
	return session.NewRedisStore(client), func() { client.Close() }, nil
}

func guardianNotifier(cfg *config.Config, log *zap.Logger) usecase.GuardianNotifier {
	if cfg.SMTPHost == "" {
		log.Info("notifikasi wali dimatikan (SMTP_HOST kosong)")
		return notifier.Nop{}
	}
	return notifier.NewMailNotifier(notifier.MailConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}, log)
}
