package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/BarenJ/AplikasiPanti/internal/apperr"
	"github.com/BarenJ/AplikasiPanti/internal/model"
	"github.com/BarenJ/AplikasiPanti/internal/notifier"
	"github.com/BarenJ/AplikasiPanti/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Batas waktu satu pengiriman notifikasi wali.
const notifyTimeout = 30 * time.Second

type GuardianNotifier interface {
	NotifyGuardian(ctx context.Context, alert notifier.Alert) error
}

type DailyRecordInput struct {
	ResidentID     uint   `json:"resident_id" validate:"required"`
	ActivityTypeID uint   `json:"activity_type_id" validate:"required"`
	RecordDatetime string `json:"record_datetime"`
	Condition      string `json:"condition" validate:"required,oneof=Baik 'Cukup Baik' 'Kurang Baik'"`
	Notes          string `json:"notes" validate:"required"`
	RecordedBy     string `json:"recorded_by"`
}

type RecordUsecase struct {
	records    repository.DailyRecordRepository
	residents  repository.ResidentRepository
	references repository.ReferenceRepository
	notifier   GuardianNotifier
	log        *zap.Logger
	now        func() time.Time

	pending sync.WaitGroup
}

func NewRecordUsecase(
	records repository.DailyRecordRepository,
	residents repository.ResidentRepository,
	references repository.ReferenceRepository,
	notifier GuardianNotifier,
	log *zap.Logger,
) *RecordUsecase {
	return &RecordUsecase{
		records: records, residents: residents, references: references,
		notifier: notifier, log: log, now: time.Now,
	}
}

func (u *RecordUsecase) List(filter repository.DailyRecordFilter) ([]repository.DailyRecordView, error) {
	for field, v := range map[string]string{"date_from": filter.DateFrom, "date_to": filter.DateTo} {
		if v == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, v); err != nil {
			return nil, apperr.Validation(field, "Field "+field+" harus berformat YYYY-MM-DD")
		}
	}
	records, err := u.records.GetAll(filter)
	return records, wrapErr(err)
}

// Create mewajibkan notes dan referensi resident/jenis aktivitas yang valid.
func (u *RecordUsecase) Create(ctx context.Context, in DailyRecordInput) (*model.DailyRecord, error) {
	in.Notes = strings.TrimSpace(in.Notes)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	datetime, err := u.normalizeDatetime(in.RecordDatetime)
	if err != nil {
		return nil, err
	}

	// 1. Referensi harus ada
	resident, err := u.residents.FindDetail(in.ResidentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Validation("resident_id", "Resident tidak ditemukan")
	}
	if err != nil {
		return nil, wrapErr(err)
	}
	activity, err := u.references.FindActivityType(in.ActivityTypeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Validation("activity_type_id", "Jenis aktivitas tidak ditemukan")
	}
	if err != nil {
		return nil, wrapErr(err)
	}

	// 2. Simpan
	record := model.DailyRecord{
		ResidentID:     in.ResidentID,
		ActivityTypeID: in.ActivityTypeID,
		RecordDatetime: datetime,
		Condition:      in.Condition,
		Notes:          in.Notes,
		RecordedBy:     orDefault(in.RecordedBy, "System"),
	}
	if err := u.records.Create(&record); err != nil {
		return nil, wrapErr(err)
	}

	// 3. Kabari wali bila kondisi kurang baik, di luar jalur request
	if record.Condition == model.RecordKurangBaik {
		alertCtx := context.WithoutCancel(ctx)
		sent := record
		u.pending.Add(1)
		go func() {
			defer u.pending.Done()
			ctx, cancel := context.WithTimeout(alertCtx, notifyTimeout)
			defer cancel()
			u.notifyGuardian(ctx, resident, activity, &sent)
		}()
	}
	return &record, nil
}

// WaitNotifications menunggu notifikasi wali yang masih dikirim (dipakai saat shutdown).
func (u *RecordUsecase) WaitNotifications() {
	u.pending.Wait()
}

func (u *RecordUsecase) Delete(id uint) error {
	if err := u.records.Delete(id); err != nil {
		return wrapErr(notFoundAs(err, "Catatan tidak ditemukan"))
	}
	return nil
}

// normalizeDatetime menerima YYYY-MM-DDTHH:MM(:SS); kosong berarti sekarang.
func (u *RecordUsecase) normalizeDatetime(v string) (string, error) {
	v = strings.Replace(strings.TrimSpace(v), " ", "T", 1)
	if v == "" {
		return u.now().Format(datetimeLayout), nil
	}
	if len(v) == 16 {
		v += ":00"
	}
	if _, err := time.Parse(datetimeLayout, v); err != nil {
		return "", apperr.Validation("record_datetime", "Field record_datetime harus berformat YYYY-MM-DDTHH:MM")
	}
	return v, nil
}

// notifyGuardian tidak pernah menggagalkan pencatatan; error hanya dicatat di log.
func (u *RecordUsecase) notifyGuardian(ctx context.Context, resident *model.Resident, activity *model.ActivityType, record *model.DailyRecord) {
	guardian := pickGuardian(resident.Guardians)
	if guardian == nil {
		u.log.Debug("tidak ada wali dengan email", zap.Uint("resident_id", resident.ID))
		return
	}

	err := u.notifier.NotifyGuardian(ctx, notifier.Alert{
		To:           guardian.Email,
		GuardianName: guardian.Name,
		ResidentName: resident.Name,
		ResidentCode: resident.ResidentCode,
		Activity:     activity.Name,
		Condition:    record.Condition,
		RecordedAt:   record.RecordDatetime,
		Notes:        record.Notes,
	})
	if err != nil {
		u.log.Error("gagal mengirim notifikasi wali",
			zap.Uint("resident_id", resident.ID),
			zap.String("to", guardian.Email),
			zap.Error(err),
		)
	}
}

// pickGuardian: wali utama ber-email, atau wali pertama ber-email.
func pickGuardian(guardians []model.Guardian) *model.Guardian {
	var first *model.Guardian
	for i := range guardians {
		g := &guardians[i]
		if g.Email == "" {
			continue
		}
		if g.IsPrimary {
			return g
		}
		if first == nil {
			first = g
		}
	}
	return first
}
