package model

const (
	ActivityRoutine = "routine"
	ActivityMedical = "medical"
	ActivityVisit   = "visit"
	ActivitySpecial = "special"

	CategoryIncome  = "income"
	CategoryExpense = "expense"
)

// ActivityType adalah data referensi untuk catatan harian.
type ActivityType struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Name      string `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Category  string `json:"category" gorm:"size:20"`
	ColorCode string `json:"color_code" gorm:"size:10;default:#6c757d"`
	Icon      string `json:"icon" gorm:"size:50;default:fa-calendar"`
}

// DonationCategory menentukan arah transaksi (income/expense).
type DonationCategory struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Type        string `json:"type" gorm:"size:10;not null"`
	Description string `json:"description" gorm:"type:text"`
}

// CodePrefix: INC untuk pemasukan, EXP untuk pengeluaran.
func (c DonationCategory) CodePrefix() string {
	if c.Type == CategoryIncome {
		return "INC"
	}
	return "EXP"
}
