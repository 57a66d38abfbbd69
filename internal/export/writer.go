package export

import (
	"encoding/csv"
	"io"

	"github.com/phpdave11/gofpdf"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"blackpiston/internal/table"
)

// Write serializes records to w in format f. title names the sheet (xlsx)
// or heads the document (pdf); csv ignores it.
func Write[T table.Record](w io.Writer, f Format, title string, cols Columns, records []T) error {
	if len(cols) == 0 {
		return errors.New("export needs at least one column")
	}
	switch f {
	case CSV:
		return writeCSV(w, cols, records)
	case XLSX:
		return writeXLSX(w, title, cols, records)
	case PDF:
		return writePDF(w, title, cols, records)
	}
	return errors.Errorf("unsupported export format %q", f)
}

func writeCSV[T table.Record](w io.Writer, cols Columns, records []T) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(cols.Headers()); err != nil {
		return errors.Wrap(err, "failed to write csv header")
	}
	if err := cw.WriteAll(Rows(cols, records)); err != nil {
		return errors.Wrap(err, "failed to write csv rows")
	}
	return nil
}

func sheetName(title string) string {
	if title == "" {
		return "Sheet1"
	}
	runes := []rune(title)
	if len(runes) > 31 {
		runes = runes[:31]
	}
	return string(runes)
}

func writeXLSX[T table.Record](w io.Writer, title string, cols Columns, records []T) (err error) {
	book := excelize.NewFile()
	defer func() {
		if cerr := book.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "failed to close workbook")
		}
	}()

	sheet := sheetName(title)
	if sheet != "Sheet1" {
		if err = book.SetSheetName("Sheet1", sheet); err != nil {
			return errors.Wrapf(err, "failed to name sheet %s", sheet)
		}
	}

	header := make([]any, len(cols))
	for i, h := range cols.Headers() {
		header[i] = h
	}
	if err = book.SetSheetRow(sheet, "A1", &header); err != nil {
		return errors.Wrap(err, "failed to write header row")
	}
	bold, err := book.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Wrap(err, "failed to create header style")
	}
	last, _ := excelize.CoordinatesToCellName(len(cols), 1)
	if err = book.SetCellStyle(sheet, "A1", last, bold); err != nil {
		return errors.Wrap(err, "failed to style header row")
	}

	for i, r := range records {
		row := make([]any, len(cols))
		for j, col := range cols {
			row[j] = col.Value(r)
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err = book.SetSheetRow(sheet, cell, &row); err != nil {
			return errors.Wrapf(err, "failed to write row %d", i+2)
		}
	}

	if _, err = book.WriteTo(w); err != nil {
		return errors.Wrap(err, "failed to write workbook")
	}
	return nil
}

func writePDF[T table.Record](w io.Writer, title string, cols Columns, records []T) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(title), false)
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 10)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(title))
	pdf.Ln(12)

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colW := (pageW - left - right) / float64(len(cols))

	header := func() {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetFillColor(230, 230, 230)
		for _, h := range cols.Headers() {
			pdf.CellFormat(colW, 7, tr(h), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 7)
	}
	header()

	_, pageH := pdf.GetPageSize()
	for _, r := range records {
		if pdf.GetY()+6 > pageH-10 {
			pdf.AddPage()
			header()
		}
		for _, col := range cols {
			pdf.CellFormat(colW, 6, clip(pdf, tr(col.Display(r)), colW-1), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return errors.Wrap(err, "failed to render pdf")
	}
	return nil
}

// clip shortens s until it fits in width at the current font.
func clip(pdf *gofpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"..") > width {
		s = s[:len(s)-1]
	}
	return s + ".."
}
