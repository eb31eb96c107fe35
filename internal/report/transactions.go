// Package report membuat file ekspor xlsx.
package report

import (
	"fmt"
	"io"

	"github.com/BarenJ/AplikasiPanti/internal/repository"

	"github.com/xuri/excelize/v2"
)

const transactionSheet = "Transaksi"

var transactionHeaders = []string{
	"Kode", "Tanggal", "Kategori", "Jenis", "Jumlah", "Sumber/Tujuan",
	"Keterangan", "Metode Bayar", "No. Referensi", "Dicatat Oleh", "Catatan",
}

var transactionWidths = []float64{14, 12, 24, 10, 16, 24, 32, 14, 18, 16, 32}

// WriteTransactions menulis satu baris header lalu satu baris per transaksi.
func WriteTransactions(w io.Writer, rows []repository.TransactionView) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(transactionSheet)
	if err != nil {
		return fmt.Errorf("gagal membuat sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("gagal menghapus sheet default: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("gagal membuat style header: %w", err)
	}
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return fmt.Errorf("gagal membuat style jumlah: %w", err)
	}

	for i, header := range transactionHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(transactionSheet, cell, header); err != nil {
			return fmt.Errorf("gagal menulis header %s: %w", cell, err)
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(transactionSheet, col, col, transactionWidths[i]); err != nil {
			return fmt.Errorf("gagal mengatur lebar kolom: %w", err)
		}
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(transactionHeaders), 1)
	if err := f.SetCellStyle(transactionSheet, "A1", lastHeader, headerStyle); err != nil {
		return fmt.Errorf("gagal mengatur style header: %w", err)
	}

	for i, row := range rows {
		amount, _ := row.Amount.Float64()
		values := []interface{}{
			row.TransactionCode,
			row.TransactionDate,
			row.CategoryName,
			row.TransactionType,
			amount,
			row.Source,
			row.Description,
			row.PaymentMethod,
			row.ReferenceNumber,
			row.RecordedBy,
			row.Notes,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(transactionSheet, cell, &values); err != nil {
			return fmt.Errorf("gagal menulis baris %d: %w", i+2, err)
		}
		amountCell, _ := excelize.CoordinatesToCellName(5, i+2)
		if err := f.SetCellStyle(transactionSheet, amountCell, amountCell, amountStyle); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("gagal menulis file xlsx: %w", err)
	}
	return nil
}
