package model

import "time"

const (
	GenderMale   = "male"
	GenderFemale = "female"

	ConditionSehat       = "Sehat"
	ConditionCukupSehat  = "Cukup Sehat"
	ConditionKurangSehat = "Kurang Sehat"

	ResidentAktif          = "Aktif"
	ResidentPerluPerhatian = "Perlu Perhatian"
	ResidentKeluar         = "Keluar"
	ResidentMeninggal      = "Meninggal"
)

// Resident adalah penghuni panti. ResidentCode disimpan di kolom resident_id (kode "R-001").
type Resident struct {
	ID                  uint   `json:"id" gorm:"primaryKey"`
	ResidentCode        string `json:"resident_id" gorm:"column:resident_id;size:20;uniqueIndex;not null"`
	Name                string `json:"name" gorm:"size:150;not null;index:idx_residents_name"`
	Age                 int    `json:"age" gorm:"not null"`
	Gender              string `json:"gender" gorm:"size:10;not null"`
	BirthDate           string `json:"birth_date" gorm:"size:10;not null"`
	BirthPlace          string `json:"birth_place" gorm:"size:100"`
	Address             string `json:"address" gorm:"type:text"`
	Religion            string `json:"religion" gorm:"size:30"`
	JoinDate            string `json:"join_date" gorm:"size:10;not null"`
	Condition           string `json:"condition" gorm:"column:health_condition;size:20"`
	MedicalHistory      string `json:"medical_history" gorm:"type:text"`
	Allergies           string `json:"allergies" gorm:"type:text"`
	Smoking             string `json:"smoking" gorm:"size:30"`
	Alcohol             string `json:"alcohol" gorm:"size:30"`
	FunctionalWalking   string `json:"functional_walking" gorm:"size:30;default:Mandiri"`
	FunctionalEating    string `json:"functional_eating" gorm:"size:30;default:Mandiri"`
	MentalEmotion       string `json:"mental_emotion" gorm:"size:30;default:Stabil"`
	MentalConsciousness string `json:"mental_consciousness" gorm:"size:30;default:Compos Mentis"`
	PhotoPath           string `json:"photo_path" gorm:"size:255"`
	AudioPath           string `json:"audio_path" gorm:"size:255"`
	Status              string `json:"status" gorm:"size:20;default:Aktif;index:idx_residents_status"`
	RoomID              *uint  `json:"room_id" gorm:"index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relasi
	Room          *Room          `json:"room,omitempty" gorm:"foreignKey:RoomID"`
	Guardians     []Guardian     `json:"guardians,omitempty" gorm:"foreignKey:ResidentID"`
	Medications   []Medication   `json:"medications,omitempty" gorm:"foreignKey:ResidentID"`
	HealthRecords []HealthRecord `json:"health_records,omitempty" gorm:"foreignKey:ResidentID"`
}

const (
	ResidentTypeOpa = "Opa"
	ResidentTypeOma = "Oma"
)

// ResidentType adalah sebutan tampilan: Opa untuk laki-laki, Oma untuk perempuan.
func (r Resident) ResidentType() string {
	return ResidentTypeOf(r.Gender)
}

func ResidentTypeOf(gender string) string {
	if gender == GenderMale {
		return ResidentTypeOpa
	}
	return ResidentTypeOma
}
