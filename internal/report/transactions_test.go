package report

import (
	"bytes"
	"testing"

	"github.com/BarenJ/AplikasiPanti/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteTransactions(t *testing.T) {
	rows := []repository.TransactionView{
		{
			TransactionCode: "INC-002",
			TransactionDate: "2024-03-05",
			CategoryName:    "Donasi Perorangan",
			TransactionType: "income",
			Amount:          decimal.RequireFromString("1500000.50"),
			Source:          "Ibu Sari",
			PaymentMethod:   "transfer",
		},
		{
			TransactionCode: "EXP-001",
			TransactionDate: "2024-03-01",
			CategoryName:    "Makanan",
			TransactionType: "expense",
			Amount:          decimal.NewFromInt(250000),
			Description:     "Belanja dapur",
			PaymentMethod:   "cash",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTransactions(&buf, rows))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{transactionSheet}, f.GetSheetList())

	got, err := f.GetRows(transactionSheet)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, transactionHeaders, got[0])
	assert.Equal(t, "INC-002", got[1][0])
	assert.Equal(t, "Donasi Perorangan", got[1][2])
	assert.Equal(t, "EXP-001", got[2][0])
	assert.Equal(t, "Belanja dapur", got[2][6])

	raw, err := f.GetCellValue(transactionSheet, "E2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "1500000.5", raw)
}

func TestWriteTransactionsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTransactions(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(transactionSheet)
	require.NoError(t, err)
	require.Len(t, got, 1)
}
