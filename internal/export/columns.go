// Package export serializes filtered, sorted record sets to CSV, XLSX and
// PDF. Output columns and their order come from a Columns mapping; records
// are written in the order given.
package export

import (
	"strings"

	"github.com/pkg/errors"

	"blackpiston/internal/table"
	"blackpiston/internal/utils"
)

type Format string

const (
	CSV  Format = "csv"
	XLSX Format = "xlsx"
	PDF  Format = "pdf"
)

// ParseFormat defaults to xlsx, the format the back-office downloads.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return XLSX, nil
	case CSV, XLSX, PDF:
		return f, nil
	}
	return "", errors.Errorf("unsupported export format %q", s)
}

func (f Format) ContentType() string {
	switch f {
	case CSV:
		return "text/csv; charset=utf-8"
	case PDF:
		return "application/pdf"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Filename is e.g. listings-export.xlsx.
func Filename(base string, f Format) string {
	return utils.SafeFilenamePart(base) + "-export." + string(f)
}

// Column maps one output header to a record field. Render, when set,
// replaces the default text rendering. Money columns stay numeric in CSV
// and XLSX and are printed as pounds in PDF.
type Column struct {
	Header string
	Field  string
	Render func(v any) string
	Money  bool
}

type Columns []Column

func (c Columns) Headers() []string {
	out := make([]string, len(c))
	for i, col := range c {
		out[i] = col.Header
	}
	return out
}

// Value is the raw cell value: numbers stay numeric, everything else is
// rendered as text. Missing fields are blank.
func (col Column) Value(r table.Record) any {
	v, ok := r.FieldValue(col.Field)
	if !ok || v == nil {
		return ""
	}
	if col.Render != nil {
		return col.Render(v)
	}
	if _, isNum := table.Number(v); isNum {
		return v
	}
	return table.Text(v)
}

// Text is the cell rendered as a string.
func (col Column) Text(r table.Record) string {
	return table.Text(col.Value(r))
}

// Display is the cell as printed on a document.
func (col Column) Display(r table.Record) string {
	if col.Money {
		if n, ok := table.Number(col.Value(r)); ok {
			return utils.FormatGBP(int64(n))
		}
	}
	return col.Text(r)
}

// Rows renders every record as one row of cell text.
func Rows[T table.Record](cols Columns, records []T) [][]string {
	out := make([][]string, 0, len(records))
	for _, r := range records {
		row := make([]string, len(cols))
		for i, col := range cols {
			row[i] = col.Text(r)
		}
		out = append(out, row)
	}
	return out
}

// ListingColumns is the admin listings export layout.
var ListingColumns = Columns{
	{Header: "ID", Field: "id"},
	{Header: "Title", Field: "title"},
	{Header: "Type", Field: "type"},
	{Header: "Make", Field: "make"},
	{Header: "Model", Field: "model"},
	{Header: "Year", Field: "year"},
	{Header: "Price", Field: "price", Money: true},
	{Header: "Mileage", Field: "mileage"},
	{Header: "Status", Field: "status"},
	{Header: "Seller", Field: "sellerName"},
	{Header: "VIN", Field: "vin"},
	{Header: "Location", Field: "location"},
	{Header: "Views", Field: "views"},
}

// UserColumns is the admin users export layout.
var UserColumns = Columns{
	{Header: "ID", Field: "id"},
	{Header: "Name", Field: "name"},
	{Header: "Email", Field: "email"},
	{Header: "Role", Field: "role"},
	{Header: "Status", Field: "status"},
	{Header: "Joined", Field: "createdAt", Render: func(v any) string { return utils.DateOnly(table.Text(v)) }},
	{Header: "Listings", Field: "listings"},
}
