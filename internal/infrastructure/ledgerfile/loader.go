// Package ledgerfile reads the sales ledger workbook into the in-memory read
// model. It accepts xlsx workbooks and UTF-8 CSV exports of the same table.
package ledgerfile

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/salesboard/backend/internal/domain/ledger"
)

// Column names after normalization. The source workbook spells the opening
// balance column "openning_balance"; the alias table absorbs that.
const (
	colDate                 = "date"
	colSalesExecutive       = "sales_executive"
	colCustomerName         = "customer_name"
	colCustomerType         = "customer_type"
	colOpeningBalance       = "opening_balance"
	colSalesAmount          = "sales_amount"
	colSalesReturn          = "sales_return"
	colPaidAmount           = "paid_amount"
	colCustomerCashback     = "customer_cashback"
	colExecutiveCommission  = "executive_commission"
	colTeamLeaderCommission = "teamleader_commission"
	colGMCommission         = "gm_commission"
)

var requiredColumns = []string{
	colDate,
	colSalesExecutive,
	colCustomerName,
	colOpeningBalance,
	colSalesAmount,
	colSalesReturn,
	colPaidAmount,
	colCustomerCashback,
}

var headerAliases = map[string]string{
	"openning_balance":       colOpeningBalance,
	"executive":              colSalesExecutive,
	"customer":               colCustomerName,
	"team_leader_commission": colTeamLeaderCommission,
	"g_m_commission":         colGMCommission,
}

// dateLayouts are tried in order when a date cell is text.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01-02-06",
	"1/2/06 15:04",
	"01/02/2006",
	"1/2/2006",
	"02-01-2006",
	time.RFC3339,
}

// Loader parses a ledger source file into an immutable snapshot.
type Loader struct {
	sheetName string
	dateHint  string
	logger    *zap.Logger
}

// Option is a functional option for Loader configuration
type Option func(*Loader)

// WithSheetName selects the worksheet to read; the default is the first sheet
func WithSheetName(name string) Option {
	return func(l *Loader) {
		l.sheetName = name
	}
}

// WithDateHint sets a preferred date layout tried before the built-in ones
func WithDateHint(layout string) Option {
	return func(l *Loader) {
		l.dateHint = layout
	}
}

// WithLogger sets the logger used for row-level warnings
func WithLogger(logger *zap.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a new Loader
func NewLoader(opts ...Option) *Loader {
	l := &Loader{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the source file at path and builds a ledger snapshot.
// The returned snapshot is never mutated afterwards; callers share it.
func (l *Loader) Load(ctx context.Context, path string) (*ledger.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		records [][]string
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		records, err = l.readWorkbook(path)
	case ".csv":
		records, err = l.readCSV(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	return l.buildSnapshot(path, records)
}

func (l *Loader) readWorkbook(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := l.sheetName
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrEmptyFile
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}
	return rows, nil
}

func (l *Loader) readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	br := bufio.NewReader(f)

	// Detect and strip UTF-8 BOM
	head, err := br.Peek(3)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(head) >= 3 && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
		_, _ = br.Discard(3)
	}

	probe, err := br.Peek(4096)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read file for encoding validation: %w", err)
	}
	if len(probe) == 0 {
		return nil, ErrEmptyFile
	}
	if !utf8.Valid(probe) {
		return nil, ErrInvalidEncoding
	}

	r := csv.NewReader(br)
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}
	return records, nil
}

func (l *Loader) buildSnapshot(path string, records [][]string) (*ledger.Snapshot, error) {
	header := records[0]
	columns := make(map[string]int, len(header))
	for i, h := range header {
		name := normalizeHeader(h)
		if alias, ok := headerAliases[name]; ok {
			name = alias
		}
		if name == "" {
			continue
		}
		if _, exists := columns[name]; !exists {
			columns[name] = i
		}
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: header row is blank", ErrMissingHeader)
	}

	for _, required := range requiredColumns {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingHeader, required)
		}
	}

	_, typeAvailable := columns[colCustomerType]
	if !typeAvailable {
		l.logger.Warn("customer_type column unavailable, category reports will be empty",
			zap.String("path", path))
	}

	cell := func(record []string, column string) string {
		idx, ok := columns[column]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	rows := make([]ledger.Transaction, 0, len(records)-1)
	undated := 0
	for i, record := range records[1:] {
		rowNum := i + 2 // 1-indexed, after the header

		if isEmptyRecord(record) {
			continue
		}

		// A blank or unreadable date keeps the row with a null date so its
		// amounts still count in all-time totals.
		date, ok := l.parseDate(cell(record, colDate))
		if !ok {
			if raw := cell(record, colDate); raw != "" {
				l.logger.Warn("treating unreadable date as blank",
					zap.Int("row", rowNum),
					zap.String("value", raw))
			}
			undated++
		}

		tx := ledger.Transaction{
			Date:           date,
			SalesExecutive: cell(record, colSalesExecutive),
			CustomerName:   cell(record, colCustomerName),
			CustomerType:   cell(record, colCustomerType),
		}
		amounts := []struct {
			column string
			dest   *decimal.NullDecimal
		}{
			{colOpeningBalance, &tx.OpeningBalance},
			{colSalesAmount, &tx.SalesAmount},
			{colSalesReturn, &tx.SalesReturn},
			{colPaidAmount, &tx.PaidAmount},
			{colCustomerCashback, &tx.CustomerCashback},
			{colExecutiveCommission, &tx.ExecutiveCommission},
			{colTeamLeaderCommission, &tx.TeamLeaderCommission},
			{colGMCommission, &tx.GMCommission},
		}
		for _, a := range amounts {
			value, ok := parseAmount(cell(record, a.column))
			if !ok {
				l.logger.Warn("treating unreadable amount as blank",
					zap.Int("row", rowNum),
					zap.String("column", a.column),
					zap.String("value", cell(record, a.column)))
				continue
			}
			*a.dest = value
		}

		rows = append(rows, tx)
	}

	if len(rows) == 0 {
		return nil, ErrNoDataRows
	}

	return &ledger.Snapshot{
		SourcePath:            path,
		Rows:                  rows,
		LoadedAt:              time.Now().UTC(),
		CustomerTypeAvailable: typeAvailable,
		UndatedRows:           undated,
	}, nil
}

// parseDate accepts text dates in the known layouts and raw Excel serials.
func (l *Loader) parseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}

	layouts := dateLayouts
	if l.dateHint != "" {
		layouts = append([]string{l.dateHint}, dateLayouts...)
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}

	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t.UTC(), true
		}
	}

	return time.Time{}, false
}

// parseAmount turns a cell into a nullable decimal. Blank cells are null;
// unparsable cells report ok=false so the caller can warn and degrade.
func parseAmount(value string) (decimal.NullDecimal, bool) {
	if value == "" || value == "-" {
		return decimal.NullDecimal{}, true
	}
	cleaned := strings.ReplaceAll(value, ",", "")
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.NullDecimal{}, false
	}
	return decimal.NewNullDecimal(d), true
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, " ", "_")
	return h
}

func isEmptyRecord(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
