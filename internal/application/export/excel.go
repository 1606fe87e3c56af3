// Package export renders report results into downloadable workbooks.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type served with generated workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// FileName builds an attachment name like "sales-history-20240215-093000.xlsx".
func FileName(prefix string, at time.Time) string {
	return fmt.Sprintf("%s-%s.xlsx", prefix, at.UTC().Format("20060102-150405"))
}

// Table is a flat sheet: a header row followed by data rows.
type Table struct {
	Sheet   string
	Headers []string
	Rows    [][]any
}

// Write renders the table as an xlsx workbook onto w.
func (t *Table) Write(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := t.Sheet
	if sheet == "" {
		sheet = "Sheet1"
	}
	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return fmt.Errorf("rename sheet: %w", err)
		}
	}

	for col, h := range t.Headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for row, values := range t.Rows {
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("write cell: %w", err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
