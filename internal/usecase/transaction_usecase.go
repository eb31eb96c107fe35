package usecase

import (
	"context"
	"strconv"
	"time"

	"github.com/BarenJ/AplikasiPanti/internal/apperr"
	"github.com/BarenJ/AplikasiPanti/internal/model"
	"github.com/BarenJ/AplikasiPanti/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type TransactionInput struct {
	CategoryID      uint            `json:"category_id" validate:"required"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionDate string          `json:"transaction_date" validate:"required,datetime=2006-01-02"`
	Source          string          `json:"source"`
	Description     string          `json:"description"`
	PaymentMethod   string          `json:"payment_method" validate:"omitempty,oneof=cash transfer check other"`
	ReferenceNumber string          `json:"reference_number"`
	Notes           string          `json:"notes"`
	RecordedBy      string          `json:"recorded_by"`

	// Lampiran yang sudah disimpan handler; dihapus bila penyimpanan gagal.
	AttachmentPath string `json:"-"`
}

type FinancialSummary struct {
	Summary          *repository.FinancialTotals `json:"summary"`
	MonthlyBreakdown []repository.MonthlyTotal   `json:"monthly_breakdown"`
	CurrentYear      string                      `json:"current_year"`
}

type TransactionUsecase struct {
	db           *gorm.DB
	transactions repository.TransactionRepository
	references   repository.ReferenceRepository
	seq          repository.SequenceRepository
	files        FileRemover
	log          *zap.Logger
	now          func() time.Time
}

func NewTransactionUsecase(
	db *gorm.DB,
	transactions repository.TransactionRepository,
	references repository.ReferenceRepository,
	seq repository.SequenceRepository,
	files FileRemover,
	log *zap.Logger,
) *TransactionUsecase {
	return &TransactionUsecase{
		db: db, transactions: transactions, references: references, seq: seq,
		files: files, log: log, now: time.Now,
	}
}

// Create memberi kode INC-/EXP- sesuai arah kategori.
func (u *TransactionUsecase) Create(ctx context.Context, in TransactionInput) (*model.Transaction, error) {
	committed := false
	defer func() {
		if !committed {
			u.files.Remove(in.AttachmentPath)
		}
	}()

	// 1. Validasi
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if in.Amount.IsNegative() {
		return nil, apperr.Validation("amount", "Field amount tidak boleh negatif")
	}

	// 2. Kategori menentukan prefix kode
	category, err := u.references.FindCategory(in.CategoryID)
	if err != nil {
		return nil, wrapErr(notFoundAs(err, "Kategori tidak ditemukan"))
	}

	var trx model.Transaction
	resync := func() error { return u.seq.Resync(category.CodePrefix()) }
	err = withCodeRetry(u.log, resync, func() error {
		return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			code, err := u.seq.WithTx(tx).NextCode(category.CodePrefix())
			if err != nil {
				return err
			}
			trx = model.Transaction{
				TransactionCode: code,
				CategoryID:      category.ID,
				Amount:          in.Amount.Round(2),
				TransactionDate: in.TransactionDate,
				Source:          in.Source,
				Description:     in.Description,
				PaymentMethod:   orDefault(in.PaymentMethod, model.PaymentCash),
				ReferenceNumber: in.ReferenceNumber,
				RecordedBy:      in.RecordedBy,
				Notes:           in.Notes,
				AttachmentPath:  in.AttachmentPath,
			}
			return u.transactions.WithTx(tx).Create(&trx)
		})
	})
	if err != nil {
		return nil, wrapErr(err)
	}
	committed = true

	u.log.Info("transaksi dibuat",
		zap.String("transaction_id", trx.TransactionCode),
		zap.String("amount", trx.Amount.StringFixed(2)),
	)
	return &trx, nil
}

// Delete menghapus baris lalu lampirannya; lampiran yang sudah hilang dari disk tidak dianggap error.
func (u *TransactionUsecase) Delete(id uint) error {
	trx, err := u.transactions.FindByID(id)
	if err != nil {
		return wrapErr(notFoundAs(err, "Transaksi tidak ditemukan"))
	}
	if err := u.transactions.Delete(id); err != nil {
		return wrapErr(notFoundAs(err, "Transaksi tidak ditemukan"))
	}
	u.files.Remove(trx.AttachmentPath)
	u.log.Info("transaksi dihapus", zap.String("transaction_id", trx.TransactionCode))
	return nil
}

func (u *TransactionUsecase) List(filter repository.TransactionFilter) ([]repository.TransactionView, error) {
	if filter.Type != "" && filter.Type != model.CategoryIncome && filter.Type != model.CategoryExpense {
		return nil, apperr.Validation("type", "Field type harus salah satu dari: income expense")
	}
	if filter.Month != "" {
		if _, err := time.Parse("2006-01", filter.Month); err != nil {
			return nil, apperr.Validation("month", "Field month harus berformat YYYY-MM")
		}
	}
	rows, err := u.transactions.GetAll(filter)
	return rows, wrapErr(err)
}

// FinancialSummary: year kosong berarti tahun berjalan.
func (u *TransactionUsecase) FinancialSummary(year string) (*FinancialSummary, error) {
	if year == "" {
		year = strconv.Itoa(u.now().Year())
	}
	if _, err := time.Parse("2006", year); err != nil {
		return nil, apperr.Validation("year", "Field year harus berformat YYYY")
	}

	totals, err := u.transactions.Totals(year)
	if err != nil {
		return nil, wrapErr(err)
	}
	monthly, err := u.transactions.Monthly(year)
	if err != nil {
		return nil, wrapErr(err)
	}
	if monthly == nil {
		monthly = []repository.MonthlyTotal{}
	}
	return &FinancialSummary{Summary: totals, MonthlyBreakdown: monthly, CurrentYear: year}, nil
}

// ParseAmount mengubah input form menjadi decimal.
func ParseAmount(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, apperr.Validation("amount", "Field amount harus diisi")
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, apperr.Validation("amount", "Field amount harus berupa angka")
	}
	return amount, nil
}

