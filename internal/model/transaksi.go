package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentCash     = "cash"
	PaymentTransfer = "transfer"
	PaymentCheck    = "check"
	PaymentOther    = "other"
)

// Transaction adalah pemasukan/pengeluaran. Kode INC-001/EXP-001 disimpan di kolom transaction_id.
type Transaction struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	TransactionCode string          `json:"transaction_id" gorm:"column:transaction_id;size:20;uniqueIndex;not null"`
	CategoryID      uint            `json:"category_id" gorm:"not null;index"`
	Amount          decimal.Decimal `json:"amount" gorm:"type:decimal(15,2);not null"`
	TransactionDate string          `json:"transaction_date" gorm:"size:10;not null;index:idx_transactions_date"`
	Source          string          `json:"source" gorm:"size:150"`
	Description     string          `json:"description" gorm:"type:text"`
	PaymentMethod   string          `json:"payment_method" gorm:"size:20"`
	ReferenceNumber string          `json:"reference_number" gorm:"size:100"`
	RecordedBy      string          `json:"recorded_by" gorm:"size:100"`
	Notes           string          `json:"notes" gorm:"type:text"`
	AttachmentPath  string          `json:"attachment_path" gorm:"size:255"`
	CreatedAt       time.Time       `json:"created_at"`

	Category *DonationCategory `json:"-" gorm:"foreignKey:CategoryID"`
}
