package routes

import (
	"github.com/BarenJ/AplikasiPanti/internal/middleware"
	"github.com/BarenJ/AplikasiPanti/internal/repository"
	"github.com/BarenJ/AplikasiPanti/internal/session"
	"github.com/BarenJ/AplikasiPanti/internal/storage"
	"github.com/BarenJ/AplikasiPanti/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Services adalah repository dan usecase yang dipakai bersama oleh routes dan job.
type Services struct {
	DB       *gorm.DB
	Log      *zap.Logger
	Sessions *session.Manager
	Files    *storage.LocalStore

	References repository.ReferenceRepository
	Dashboard  repository.DashboardRepository

	Residents    *usecase.ResidentUsecase
	Rooms        *usecase.RoomUsecase
	Records      *usecase.RecordUsecase
	Transactions *usecase.TransactionUsecase
	Users        *usecase.UserUsecase
}

func NewServices(db *gorm.DB, sessions *session.Manager, files *storage.LocalStore, notifier usecase.GuardianNotifier, log *zap.Logger) *Services {
	residentRepo := repository.NewResidentRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	recordRepo := repository.NewDailyRecordRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	referenceRepo := repository.NewReferenceRepository(db)
	seqRepo := repository.NewSequenceRepository(db)
	userRepo := repository.NewUserRepository(db)

	return &Services{
		DB:         db,
		Log:        log,
		Sessions:   sessions,
		Files:      files,
		References: referenceRepo,
		Dashboard:  repository.NewDashboardRepository(db),

		Residents:    usecase.NewResidentUsecase(db, residentRepo, roomRepo, recordRepo, seqRepo, files, log),
		Rooms:        usecase.NewRoomUsecase(db, roomRepo, residentRepo, log),
		Records:      usecase.NewRecordUsecase(recordRepo, residentRepo, referenceRepo, notifier, log),
		Transactions: usecase.NewTransactionUsecase(db, transactionRepo, referenceRepo, seqRepo, files, log),
		Users:        usecase.NewUserUsecase(userRepo, sessions, log),
	}
}

// Setup mendaftarkan semua endpoint di bawah /api.
func Setup(app *fiber.App, svc *Services) {
	api := app.Group("/api")
	auth := middleware.Auth(svc.Sessions)

	SetupAuthRoutes(api, auth, svc)
	SetupResidentRoutes(api, auth, svc)
	SetupRoomRoutes(api, auth, svc)
	SetupRecordRoutes(api, auth, svc)
	SetupTransactionRoutes(api, auth, svc)
	SetupUserRoutes(api, auth, svc)
	SetupReferenceRoutes(api, auth, svc)
	SetupDashboardRoutes(api, auth, svc)
}

// can adalah singkatan middleware.Permission.
func can(resource, action string) fiber.Handler {
	return middleware.Permission(resource, action)
}

