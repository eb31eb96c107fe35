package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/BarenJ/AplikasiPanti/internal/apperr"
	"github.com/BarenJ/AplikasiPanti/internal/model"
	"github.com/BarenJ/AplikasiPanti/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FileRemover menghapus file upload; file yang sudah tidak ada diabaikan.
type FileRemover interface {
	Remove(paths ...string)
}

type GuardianInput struct {
	Name         string `json:"name"`
	IDNumber     string `json:"id_number"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
	Address      string `json:"address"`
	IsPrimary    bool   `json:"is_primary"`
}

type MedicationInput struct {
	MedicationName string `json:"medication_name"`
	Dosage         string `json:"dosage"`
	Schedule       string `json:"schedule"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	Notes          string `json:"notes"`
	Status         string `json:"status"`
}

// ResidentInput adalah isi form penerimaan resident.
type ResidentInput struct {
	Name                string `json:"name" form:"name" validate:"required"`
	Gender              string `json:"gender" form:"gender" validate:"required,oneof=male female"`
	BirthDate           string `json:"birth_date" form:"birth_date" validate:"required,datetime=2006-01-02"`
	JoinDate            string `json:"join_date" form:"join_date" validate:"required,datetime=2006-01-02"`
	Condition           string `json:"condition" form:"condition" validate:"required,oneof='Sehat' 'Cukup Sehat' 'Kurang Sehat'"`
	BirthPlace          string `json:"birth_place" form:"birth_place"`
	Address             string `json:"address" form:"address"`
	Religion            string `json:"religion" form:"religion"`
	MedicalHistory      string `json:"medical_history" form:"medical_history"`
	Allergies           string `json:"allergies" form:"allergies"`
	Smoking             string `json:"smoking" form:"smoking"`
	Alcohol             string `json:"alcohol" form:"alcohol"`
	FunctionalWalking   string `json:"functional_walking" form:"functional_walking"`
	FunctionalEating    string `json:"functional_eating" form:"functional_eating"`
	MentalEmotion       string `json:"mental_emotion" form:"mental_emotion"`
	MentalConsciousness string `json:"mental_consciousness" form:"mental_consciousness"`
	Status              string `json:"status" form:"status" validate:"omitempty,oneof=Aktif 'Perlu Perhatian' Keluar Meninggal"`
	RoomID              uint   `json:"room_id" form:"room_id"`

	Hemoglobin        string `json:"hemoglobin" form:"hemoglobin"`
	Leukocyte         string `json:"leukocyte" form:"leukocyte"`
	Erythrocyte       string `json:"erythrocyte" form:"erythrocyte"`
	BloodSugarRandom  string `json:"blood_sugar_random" form:"blood_sugar_random"`
	BloodSugarFasting string `json:"blood_sugar_fasting" form:"blood_sugar_fasting"`
	BloodSugarTwoHour string `json:"blood_sugar_two_hour" form:"blood_sugar_two_hour"`

	Guardians   []GuardianInput   `json:"guardians" form:"-"`
	Medications []MedicationInput `json:"medications" form:"-"`

	// Path file yang sudah disimpan handler; dihapus bila penyimpanan gagal.
	PhotoPath string `json:"-" form:"-"`
	AudioPath string `json:"-" form:"-"`
}

type CreatedResident struct {
	ID           uint   `json:"id"`
	ResidentCode string `json:"resident_id"`
	Age          int    `json:"age"`
}

// ResidentDetail adalah agregat resident untuk halaman detail.
type ResidentDetail struct {
	*model.Resident
	ResidentType  string                       `json:"resident_type"`
	Hematology    *model.HealthRecord          `json:"hematology"`
	BloodSugar    *model.HealthRecord          `json:"blood_sugar"`
	RecentRecords []repository.DailyRecordView `json:"recent_records"`
}

type HealthRecordInput struct {
	RecordType        string   `json:"record_type" validate:"required,oneof=hematology blood_sugar blood_pressure general initial"`
	Hemoglobin        string   `json:"hemoglobin"`
	Leukocyte         string   `json:"leukocyte"`
	Erythrocyte       string   `json:"erythrocyte"`
	BloodSugarRandom  string   `json:"blood_sugar_random"`
	BloodSugarFasting string   `json:"blood_sugar_fasting"`
	BloodSugarTwoHour string   `json:"blood_sugar_two_hour"`
	Systolic          *int     `json:"systolic"`
	Diastolic         *int     `json:"diastolic"`
	HeartRate         *int     `json:"heart_rate"`
	Temperature       *float64 `json:"temperature"`
	Weight            *float64 `json:"weight"`
	Height            *float64 `json:"height"`
	BMI               *float64 `json:"bmi"`
	Notes             string   `json:"notes"`
	RecordedDate      string   `json:"recorded_date" validate:"omitempty,datetime=2006-01-02"`
	RecordedBy        string   `json:"recorded_by"`
}

const recentRecordLimit = 10

type ResidentUsecase struct {
	db        *gorm.DB
	residents repository.ResidentRepository
	rooms     repository.RoomRepository
	records   repository.DailyRecordRepository
	seq       repository.SequenceRepository
	files     FileRemover
	log       *zap.Logger
	now       func() time.Time
}

func NewResidentUsecase(
	db *gorm.DB,
	residents repository.ResidentRepository,
	rooms repository.RoomRepository,
	records repository.DailyRecordRepository,
	seq repository.SequenceRepository,
	files FileRemover,
	log *zap.Logger,
) *ResidentUsecase {
	return &ResidentUsecase{
		db: db, residents: residents, rooms: rooms, records: records, seq: seq,
		files: files, log: log, now: time.Now,
	}
}

// Create menyimpan resident beserta wali, obat dan pemeriksaan awal dalam satu transaksi.
// Bila gagal di titik mana pun, file foto/audio yang sudah diupload ikut dihapus.
func (u *ResidentUsecase) Create(ctx context.Context, in ResidentInput) (*CreatedResident, error) {
	committed := false
	defer func() {
		if !committed {
			u.files.Remove(in.PhotoPath, in.AudioPath)
		}
	}()

	// 1. Validasi & hitung umur
	age, err := u.validateProfile(in)
	if err != nil {
		return nil, err
	}

	var resident model.Resident
	resync := func() error { return u.seq.Resync(repository.PrefixResident) }
	err = withCodeRetry(u.log, resync, func() error {
		return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			residents := u.residents.WithTx(tx)

			// 2. Kode resident
			code, err := u.seq.WithTx(tx).NextCode(repository.PrefixResident)
			if err != nil {
				return err
			}

			// 3. Baris resident
			resident = in.toModel()
			resident.ResidentCode = code
			resident.Age = age
			if err := residents.Create(&resident); err != nil {
				return err
			}

			// 4. Data turunan
			if err := residents.CreateGuardians(in.guardians(resident.ID)); err != nil {
				return err
			}
			if err := residents.CreateMedications(in.medications(resident.ID)); err != nil {
				return err
			}
			for _, rec := range in.initialReadings(resident.ID) {
				if err := residents.CreateHealthRecord(&rec); err != nil {
					return err
				}
			}

			// 5. Kamar (opsional)
			if in.RoomID != 0 {
				roomID := in.RoomID
				return moveResident(u.rooms.WithTx(tx), residents, &resident, &roomID)
			}
			return nil
		})
	})
	if err != nil {
		u.log.Error("gagal menyimpan resident", zap.String("name", in.Name), zap.Error(err))
		return nil, wrapErr(err)
	}
	committed = true

	u.log.Info("resident dibuat",
		zap.Uint("id", resident.ID),
		zap.String("resident_id", resident.ResidentCode),
	)
	return &CreatedResident{ID: resident.ID, ResidentCode: resident.ResidentCode, Age: resident.Age}, nil
}

func (u *ResidentUsecase) validateProfile(in ResidentInput) (int, error) {
	if err := validateStruct(in); err != nil {
		return 0, err
	}
	birth, _ := time.Parse(dateLayout, in.BirthDate)
	today := u.now()
	if birth.After(today) {
		return 0, apperr.Validation("birth_date", "Tanggal lahir tidak boleh di masa depan")
	}
	return AgeOn(birth, today), nil
}

func (u *ResidentUsecase) List(filter repository.ResidentFilter) ([]model.Resident, error) {
	residents, err := u.residents.GetAll(filter)
	return residents, wrapErr(err)
}

// Get mengembalikan resident dengan kamar, wali, obat, pemeriksaan terbaru dan 10 catatan terakhir.
func (u *ResidentUsecase) Get(id uint) (*ResidentDetail, error) {
	resident, err := u.residents.FindDetail(id)
	if err != nil {
		return nil, wrapErr(notFoundAs(err, "Resident tidak ditemukan"))
	}

	detail := &ResidentDetail{Resident: resident, ResidentType: resident.ResidentType()}
	if detail.Hematology, err = u.residents.LatestHealthRecord(id, model.RecordHematology); err != nil {
		return nil, wrapErr(err)
	}
	if detail.BloodSugar, err = u.residents.LatestHealthRecord(id, model.RecordBloodSugar); err != nil {
		return nil, wrapErr(err)
	}
	detail.RecentRecords, err = u.records.GetAll(repository.DailyRecordFilter{ResidentID: id, Limit: recentRecordLimit})
	if err != nil {
		return nil, wrapErr(err)
	}
	return detail, nil
}

// Update mengganti data profil. Kamar tidak ikut berubah; gunakan AssignRoom.
func (u *ResidentUsecase) Update(ctx context.Context, id uint, in ResidentInput) (*model.Resident, error) {
	committed := false
	defer func() {
		if !committed {
			u.files.Remove(in.PhotoPath, in.AudioPath)
		}
	}()

	age, err := u.validateProfile(in)
	if err != nil {
		return nil, err
	}

	var updated model.Resident
	var oldFiles []string
	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		residents := u.residents.WithTx(tx)
		current, err := residents.FindByID(id)
		if err != nil {
			return notFoundAs(err, "Resident tidak ditemukan")
		}

		updated = in.toModel()
		updated.ID = current.ID
		updated.ResidentCode = current.ResidentCode
		updated.RoomID = current.RoomID
		updated.CreatedAt = current.CreatedAt
		updated.Age = age
		updated.PhotoPath, updated.AudioPath = current.PhotoPath, current.AudioPath
		if in.PhotoPath != "" {
			oldFiles = append(oldFiles, current.PhotoPath)
			updated.PhotoPath = in.PhotoPath
		}
		if in.AudioPath != "" {
			oldFiles = append(oldFiles, current.AudioPath)
			updated.AudioPath = in.AudioPath
		}
		return residents.UpdateProfile(&updated)
	})
	if err != nil {
		return nil, wrapErr(err)
	}
	committed = true

	u.files.Remove(oldFiles...)
	return &updated, nil
}

// Delete menghapus resident dan semua data turunannya lalu mengurangi counter kamar.
func (u *ResidentUsecase) Delete(ctx context.Context, id uint) error {
	var deleted *model.Resident
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		residents := u.residents.WithTx(tx)
		res, err := residents.FindByID(id)
		if err != nil {
			return notFoundAs(err, "Resident tidak ditemukan")
		}
		if err := moveResident(u.rooms.WithTx(tx), residents, res, nil); err != nil {
			return err
		}
		deleted = res
		return residents.Delete(id)
	})
	if err != nil {
		return wrapErr(err)
	}

	// file dihapus setelah commit
	u.files.Remove(deleted.PhotoPath, deleted.AudioPath)
	u.log.Info("resident dihapus", zap.Uint("id", id), zap.String("resident_id", deleted.ResidentCode))
	return nil
}

func (u *ResidentUsecase) AddHealthRecord(id uint, in HealthRecordInput) (*model.HealthRecord, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if _, err := u.residents.FindByID(id); err != nil {
		return nil, wrapErr(notFoundAs(err, "Resident tidak ditemukan"))
	}

	rec := model.HealthRecord{
		ResidentID: id, RecordType: in.RecordType,
		Hemoglobin: in.Hemoglobin, Leukocyte: in.Leukocyte, Erythrocyte: in.Erythrocyte,
		BloodSugarRandom: in.BloodSugarRandom, BloodSugarFasting: in.BloodSugarFasting, BloodSugarTwoHour: in.BloodSugarTwoHour,
		Systolic: in.Systolic, Diastolic: in.Diastolic, HeartRate: in.HeartRate,
		Temperature: in.Temperature, Weight: in.Weight, Height: in.Height, BMI: in.BMI,
		Notes: in.Notes, RecordedDate: in.RecordedDate, RecordedBy: in.RecordedBy,
	}
	if rec.RecordedDate == "" {
		rec.RecordedDate = u.now().Format(dateLayout)
	}
	if rec.RecordedBy == "" {
		rec.RecordedBy = "system"
	}
	if err := u.residents.CreateHealthRecord(&rec); err != nil {
		return nil, wrapErr(err)
	}
	return &rec, nil
}

func (in ResidentInput) toModel() model.Resident {
	r := model.Resident{
		Name:                strings.TrimSpace(in.Name),
		Gender:              in.Gender,
		BirthDate:           in.BirthDate,
		BirthPlace:          in.BirthPlace,
		Address:             in.Address,
		Religion:            in.Religion,
		JoinDate:            in.JoinDate,
		Condition:           in.Condition,
		MedicalHistory:      in.MedicalHistory,
		Allergies:           in.Allergies,
		Smoking:             in.Smoking,
		Alcohol:             in.Alcohol,
		FunctionalWalking:   orDefault(in.FunctionalWalking, "Mandiri"),
		FunctionalEating:    orDefault(in.FunctionalEating, "Mandiri"),
		MentalEmotion:       orDefault(in.MentalEmotion, "Stabil"),
		MentalConsciousness: orDefault(in.MentalConsciousness, "Compos Mentis"),
		PhotoPath:           in.PhotoPath,
		AudioPath:           in.AudioPath,
		Status:              orDefault(in.Status, model.ResidentAktif),
	}
	return r
}

// guardians hanya menyimpan wali yang punya nama dan nomor telepon.
func (in ResidentInput) guardians(residentID uint) []model.Guardian {
	var out []model.Guardian
	for _, g := range in.Guardians {
		if strings.TrimSpace(g.Name) == "" || strings.TrimSpace(g.Phone) == "" {
			continue
		}
		out = append(out, model.Guardian{
			ResidentID:       residentID,
			Name:             strings.TrimSpace(g.Name),
			IDNumber:         g.IDNumber,
			Email:            g.Email,
			Phone:            strings.TrimSpace(g.Phone),
			Relationship:     g.Relationship,
			Address:          g.Address,
			IsPrimary:        g.IsPrimary,
			EmergencyContact: true,
		})
	}
	return out
}

func (in ResidentInput) medications(residentID uint) []model.Medication {
	var out []model.Medication
	for _, m := range in.Medications {
		if strings.TrimSpace(m.MedicationName) == "" {
			continue
		}
		out = append(out, model.Medication{
			ResidentID:     residentID,
			MedicationName: strings.TrimSpace(m.MedicationName),
			Dosage:         m.Dosage,
			Schedule:       m.Schedule,
			StartDate:      orDefault(m.StartDate, in.JoinDate),
			EndDate:        m.EndDate,
			Notes:          m.Notes,
			Status:         orDefault(m.Status, model.MedicationActive),
		})
	}
	return out
}

// initialReadings: paling banyak satu hematologi dan satu gula darah, tertanggal join_date.
func (in ResidentInput) initialReadings(residentID uint) []model.HealthRecord {
	var out []model.HealthRecord
	if in.Hemoglobin != "" || in.Leukocyte != "" || in.Erythrocyte != "" {
		out = append(out, model.HealthRecord{
			ResidentID:   residentID,
			RecordType:   model.RecordHematology,
			Hemoglobin:   in.Hemoglobin,
			Leukocyte:    in.Leukocyte,
			Erythrocyte:  in.Erythrocyte,
			RecordedDate: in.JoinDate,
			RecordedBy:   "system",
		})
	}
	if in.BloodSugarRandom != "" || in.BloodSugarFasting != "" || in.BloodSugarTwoHour != "" {
		out = append(out, model.HealthRecord{
			ResidentID:        residentID,
			RecordType:        model.RecordBloodSugar,
			BloodSugarRandom:  in.BloodSugarRandom,
			BloodSugarFasting: in.BloodSugarFasting,
			BloodSugarTwoHour: in.BloodSugarTwoHour,
			RecordedDate:      in.JoinDate,
			RecordedBy:        "system",
		})
	}
	return out
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
