package repository

import (
	"fmt"
	"time"

	"github.com/BarenJ/AplikasiPanti/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionView adalah transaksi beserta nama dan arah kategorinya.
type TransactionView struct {
	ID              uint            `json:"id"`
	TransactionCode string          `json:"transaction_id" gorm:"column:transaction_id"`
	CategoryID      uint            `json:"category_id"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionDate string          `json:"transaction_date"`
	Source          string          `json:"source"`
	Description     string          `json:"description"`
	PaymentMethod   string          `json:"payment_method"`
	ReferenceNumber string          `json:"reference_number"`
	RecordedBy      string          `json:"recorded_by"`
	Notes           string          `json:"notes"`
	AttachmentPath  string          `json:"attachment_path"`
	CreatedAt       time.Time       `json:"created_at"`
	CategoryName    string          `json:"category_name"`
	TransactionType string          `json:"transaction_type"`
}

type TransactionFilter struct {
	Type       string
	Month      string // YYYY-MM
	CategoryID uint
}

type FinancialTotals struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Balance      decimal.Decimal `json:"balance"`
}

type MonthlyTotal struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

type TransactionRepository interface {
	WithTx(tx *gorm.DB) TransactionRepository
	Create(trx *model.Transaction) error
	FindByID(id uint) (*model.Transaction, error)
	Delete(id uint) error
	GetAll(filter TransactionFilter) ([]TransactionView, error)
	Totals(period string) (*FinancialTotals, error)
	Monthly(year string) ([]MonthlyTotal, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db}
}

func (r *transactionRepository) WithTx(tx *gorm.DB) TransactionRepository {
	return &transactionRepository{tx}
}

func (r *transactionRepository) Create(trx *model.Transaction) error {
	return r.db.Omit("Category").Create(trx).Error
}

func (r *transactionRepository) FindByID(id uint) (*model.Transaction, error) {
	var trx model.Transaction
	err := r.db.First(&trx, id).Error
	return &trx, err
}

func (r *transactionRepository) Delete(id uint) error {
	res := r.db.Delete(&model.Transaction{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *transactionRepository) joined() *gorm.DB {
	return r.db.Table("transactions AS t").
		Joins("JOIN donation_categories dc ON dc.id = t.category_id")
}

// GetAll: semua filter opsional, urut tanggal terbaru lebih dulu.
func (r *transactionRepository) GetAll(filter TransactionFilter) ([]TransactionView, error) {
	var rows []TransactionView
	query := r.joined().Select("t.*, dc.name AS category_name, dc.type AS transaction_type")

	if filter.Type != "" {
		query = query.Where("dc.type = ?", filter.Type)
	}
	if filter.Month != "" {
		query = query.Where("SUBSTR(t.transaction_date, 1, 7) = ?", filter.Month)
	}
	if filter.CategoryID != 0 {
		query = query.Where("t.category_id = ?", filter.CategoryID)
	}

	err := query.Order("t.transaction_date DESC").Order("t.id DESC").Scan(&rows).Error
	return rows, err
}

const (
	sumIncome  = "COALESCE(SUM(CASE WHEN dc.type = 'income' THEN t.amount ELSE 0 END), 0)"
	sumExpense = "COALESCE(SUM(CASE WHEN dc.type = 'expense' THEN t.amount ELSE 0 END), 0)"
)

// Totals untuk satu periode: "YYYY" (tahun) atau "YYYY-MM" (bulan).
func (r *transactionRepository) Totals(period string) (*FinancialTotals, error) {
	var totals FinancialTotals
	err := r.joined().
		Select(sumIncome+" AS total_income, "+sumExpense+" AS total_expense").
		Where(fmt.Sprintf("SUBSTR(t.transaction_date, 1, %d) = ?", len(period)), period).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	totals.Balance = totals.TotalIncome.Sub(totals.TotalExpense)
	return &totals, nil
}

func (r *transactionRepository) Monthly(year string) ([]MonthlyTotal, error) {
	var rows []MonthlyTotal
	err := r.joined().
		Select("SUBSTR(t.transaction_date, 1, 7) AS month, "+sumIncome+" AS income, "+sumExpense+" AS expense").
		Where("SUBSTR(t.transaction_date, 1, 4) = ?", year).
		Group("SUBSTR(t.transaction_date, 1, 7)").
		Order("month DESC").
		Scan(&rows).Error
	return rows, err
}
