package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/BarenJ/AplikasiPanti/internal/apperr"
	"github.com/BarenJ/AplikasiPanti/internal/model"
	"github.com/BarenJ/AplikasiPanti/internal/repository"
	"github.com/BarenJ/AplikasiPanti/internal/storage"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func amount(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, amount(want).Equal(got), "want %s, got %s", want, got.String())
}

func (f *fixture) createTransaction(t *testing.T, category, value, date string) *model.Transaction {
	t.Helper()
	trx, err := f.transactions.Create(context.Background(), TransactionInput{
		CategoryID:      f.category(t, category).ID,
		Amount:          amount(value),
		TransactionDate: date,
	})
	require.NoError(t, err)
	return trx
}

func TestCreateTransactionCodesPerDirection(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, "INC-001", f.createTransaction(t, "Donasi Umum", "500000", "2024-03-01").TransactionCode)
	assert.Equal(t, "EXP-001", f.createTransaction(t, "Utilitas", "125000.50", "2024-03-02").TransactionCode)
	assert.Equal(t, "INC-002", f.createTransaction(t, "Donasi Keluarga", "250000", "2024-03-03").TransactionCode)

	trx := f.createTransaction(t, "Gaji Staff", "3000000", "2024-03-04")
	assert.Equal(t, "EXP-002", trx.TransactionCode)
	assert.Equal(t, model.PaymentCash, trx.PaymentMethod)
}

func TestCreateTransactionValidation(t *testing.T) {
	f := newFixture(t)
	cat := f.category(t, "Donasi Umum")

	_, err := f.transactions.Create(context.Background(), TransactionInput{
		CategoryID: 999, Amount: amount("10"), TransactionDate: "2024-03-01",
		AttachmentPath: "/uploads/transactions/proof-a.pdf",
	})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.Equal(t, []string{"/uploads/transactions/proof-a.pdf"}, f.files.Removed())

	_, err = f.transactions.Create(context.Background(), TransactionInput{
		CategoryID: cat.ID, Amount: amount("-5"), TransactionDate: "2024-03-01",
	})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = f.transactions.Create(context.Background(), TransactionInput{
		CategoryID: cat.ID, Amount: amount("5"), TransactionDate: "03/01/2024",
	})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	assert.Equal(t, int64(0), f.count(t, &model.Transaction{}, ""))
}

func TestDeleteTransactionRemovesAttachment(t *testing.T) {
	f := newFixture(t)
	store, err := storage.NewLocalStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	f.transactions.files = store

	attachment := filepath.Join(store.Root(), "transactions", "proof-nota.pdf")
	require.NoError(t, os.WriteFile(attachment, []byte("%PDF"), 0o644))

	trx, err := f.transactions.Create(context.Background(), TransactionInput{
		CategoryID:      f.category(t, "Makanan & Konsumsi").ID,
		Amount:          amount("75000"),
		TransactionDate: "2024-04-01",
		AttachmentPath:  "/uploads/transactions/proof-nota.pdf",
	})
	require.NoError(t, err)
	assert.FileExists(t, attachment)

	require.NoError(t, f.transactions.Delete(trx.ID))
	assert.NoFileExists(t, attachment)
	assert.Equal(t, int64(0), f.count(t, &model.Transaction{}, ""))

	assert.True(t, apperr.Is(f.transactions.Delete(trx.ID), apperr.KindNotFound))
}

func TestDeleteTransactionWithMissingAttachmentFile(t *testing.T) {
	f := newFixture(t)
	store, err := storage.NewLocalStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	f.transactions.files = store

	trx, err := f.transactions.Create(context.Background(), TransactionInput{
		CategoryID:      f.category(t, "Utilitas").ID,
		Amount:          amount("200000"),
		TransactionDate: "2024-04-02",
		AttachmentPath:  "/uploads/transactions/proof-sudah-dihapus.jpg",
	})
	require.NoError(t, err)

	require.NoError(t, f.transactions.Delete(trx.ID))
	assert.Equal(t, int64(0), f.count(t, &model.Transaction{}, ""))
}

func TestListTransactionsFiltersAndOrder(t *testing.T) {
	f := newFixture(t)
	f.createTransaction(t, "Donasi Umum", "100000", "2024-03-10")
	f.createTransaction(t, "Utilitas", "50000", "2024-03-12")
	f.createTransaction(t, "Donasi Yayasan", "200000", "2024-04-01")
	f.createTransaction(t, "Donasi Umum", "300000", "2024-03-12")

	all, err := f.transactions.List(repository.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "2024-04-01", all[0].TransactionDate)
	// tanggal sama: id terbaru dulu
	assert.Equal(t, "INC-003", all[1].TransactionCode)
	assert.Equal(t, "EXP-001", all[2].TransactionCode)
	assert.Equal(t, "Donasi Yayasan", all[0].CategoryName)
	assert.Equal(t, model.CategoryIncome, all[0].TransactionType)

	march, err := f.transactions.List(repository.TransactionFilter{Month: "2024-03", Type: model.CategoryIncome})
	require.NoError(t, err)
	require.Len(t, march, 2)

	byCategory, err := f.transactions.List(repository.TransactionFilter{CategoryID: f.category(t, "Utilitas").ID})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)

	_, err = f.transactions.List(repository.TransactionFilter{Type: "donasi"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	_, err = f.transactions.List(repository.TransactionFilter{Month: "2024-13"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestFinancialSummary(t *testing.T) {
	f := newFixture(t)
	f.createTransaction(t, "Donasi Umum", "1000000.25", "2024-01-15")
	f.createTransaction(t, "Medis & Obat-obatan", "250000.75", "2024-01-20")
	f.createTransaction(t, "Donasi Keluarga", "500000.50", "2024-03-05")
	f.createTransaction(t, "Donasi Umum", "999", "2023-12-31")

	summary, err := f.transactions.FinancialSummary("")
	require.NoError(t, err)
	assert.Equal(t, "2024", summary.CurrentYear)
	assertDecimal(t, "1500000.75", summary.Summary.TotalIncome)
	assertDecimal(t, "250000.75", summary.Summary.TotalExpense)
	assertDecimal(t, "1250000", summary.Summary.Balance)

	require.Len(t, summary.MonthlyBreakdown, 2)
	assert.Equal(t, "2024-03", summary.MonthlyBreakdown[0].Month)
	assertDecimal(t, "500000.5", summary.MonthlyBreakdown[0].Income)
	assert.Equal(t, "2024-01", summary.MonthlyBreakdown[1].Month)
	assertDecimal(t, "250000.75", summary.MonthlyBreakdown[1].Expense)

	empty, err := f.transactions.FinancialSummary("2020")
	require.NoError(t, err)
	assert.True(t, empty.Summary.Balance.IsZero())
	assert.Empty(t, empty.MonthlyBreakdown)
	assert.NotNil(t, empty.MonthlyBreakdown)

	_, err = f.transactions.FinancialSummary("20x4")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestParseAmount(t *testing.T) {
	got, err := ParseAmount("1500000.50")
	require.NoError(t, err)
	assertDecimal(t, "1500000.5", got)

	_, err = ParseAmount("")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	_, err = ParseAmount("satu juta")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestCreateTransactionSkipsCodeTakenOutsideCounter(t *testing.T) {
	f := newFixture(t)
	first := f.createTransaction(t, "Donasi Umum", "100000", "2024-03-01")
	assert.Equal(t, "INC-001", first.TransactionCode)

	require.NoError(t, f.db.Create(&model.Transaction{
		TransactionCode: "INC-007", CategoryID: first.CategoryID, Amount: amount("5000"), TransactionDate: "2024-03-01",
	}).Error)
	require.NoError(t, f.db.Create(&model.Transaction{
		TransactionCode: "INC-002", CategoryID: first.CategoryID, Amount: amount("5000"), TransactionDate: "2024-03-01",
	}).Error)

	assert.Equal(t, "INC-008", f.createTransaction(t, "Donasi Umum", "200000", "2024-03-02").TransactionCode)
	assert.Equal(t, "EXP-001", f.createTransaction(t, "Utilitas", "50000", "2024-03-02").TransactionCode)
}
