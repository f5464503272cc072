// Package export renders the dashboard invoice table as CSV or XLSX.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"findash/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

const sheetName = "Invoices"

// columns defines the header row shared by both formats.
var columns = []string{
	"ID",
	"Invoice Number",
	"Invoice Date",
	"Vendor",
	"Amount",
	"Currency",
	"Status",
	"Category",
}

// WriteCSV writes a BOM, the header row and one row per invoice.
func WriteCSV(w io.Writer, rows []domain.InvoiceRow) error {
	if _, err := w.Write(BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	for i := range rows {
		if err := cw.Write(invoiceToRow(&rows[i])); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes a single-sheet workbook. Amounts are stored as numbers so
// spreadsheet formulas work on them.
func WriteXLSX(w io.Writer, rows []domain.InvoiceRow) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := invoiceToCells(&rows[i])
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// Write renders rows in the requested format.
func Write(w io.Writer, format domain.ExportFormat, rows []domain.InvoiceRow) error {
	switch format {
	case domain.ExportFormatCSV:
		return WriteCSV(w, rows)
	case domain.ExportFormatXLSX:
		return WriteXLSX(w, rows)
	default:
		return domain.ErrInvalidExportFormat
	}
}

// BuildFilename returns the attachment name for an export made on day now.
// Format: invoices_{YYYY-MM-DD}.{ext}
func BuildFilename(format domain.ExportFormat, now time.Time) string {
	return fmt.Sprintf("invoices_%s.%s", now.Format("2006-01-02"), format)
}

func invoiceToRow(r *domain.InvoiceRow) []string {
	return []string{
		strconv.FormatInt(r.ID, 10),
		deref(r.InvoiceNumber),
		r.InvoiceDate.String(),
		deref(r.Vendor),
		formatMoney(r.Amount),
		deref(r.Currency),
		r.Status,
		r.Category,
	}
}

func invoiceToCells(r *domain.InvoiceRow) []interface{} {
	var amount interface{}
	if r.Amount != nil {
		amount = *r.Amount
	}
	return []interface{}{
		r.ID,
		deref(r.InvoiceNumber),
		r.InvoiceDate.String(),
		deref(r.Vendor),
		amount,
		deref(r.Currency),
		r.Status,
		r.Category,
	}
}

func formatMoney(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
