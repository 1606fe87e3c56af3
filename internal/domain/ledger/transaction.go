// Package ledger holds the sales ledger read model and the calculation
// primitives (outstanding balance, filtering, aggregation) shared by every
// report.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one row of the sales ledger.
// Numeric fields are nullable: a blank cell in the source stays null here and
// is only treated as zero at the arithmetic boundary. A blank or unreadable
// date cell leaves Date at the zero time; such rows still count in ungrouped
// totals but never match a date range and never form a day or month group.
type Transaction struct {
	Date                 time.Time           `json:"date"`
	SalesExecutive       string              `json:"sales_executive"`
	CustomerName         string              `json:"customer_name"`
	CustomerType         string              `json:"customer_type,omitempty"`
	OpeningBalance       decimal.NullDecimal `json:"opening_balance"`
	SalesAmount          decimal.NullDecimal `json:"sales_amount"`
	SalesReturn          decimal.NullDecimal `json:"sales_return"`
	PaidAmount           decimal.NullDecimal `json:"paid_amount"`
	CustomerCashback     decimal.NullDecimal `json:"customer_cashback"`
	ExecutiveCommission  decimal.NullDecimal `json:"executive_commission"`
	TeamLeaderCommission decimal.NullDecimal `json:"teamleader_commission"`
	GMCommission         decimal.NullDecimal `json:"gm_commission"`
}

// amount resolves a nullable cell to its arithmetic value, null counting as zero.
func amount(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}

// Amount exposes the null-as-zero resolution for callers outside the package.
func Amount(d decimal.NullDecimal) decimal.Decimal {
	return amount(d)
}

// HasDate reports whether the row carries a usable transaction date.
func (t Transaction) HasDate() bool {
	return !t.Date.IsZero()
}

// Day returns the transaction date truncated to midnight UTC.
func (t Transaction) Day() time.Time {
	return time.Date(t.Date.Year(), t.Date.Month(), t.Date.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthKey returns the calendar month of the transaction as "2006-01",
// or "" for an undated row.
func (t Transaction) MonthKey() string {
	if !t.HasDate() {
		return ""
	}
	return t.Date.Format("2006-01")
}

// Snapshot is an immutable view of a fully loaded ledger source.
// Callers must not mutate Rows.
type Snapshot struct {
	SourcePath            string        `json:"source_path"`
	Rows                  []Transaction `json:"-"`
	LoadedAt              time.Time     `json:"loaded_at"`
	CustomerTypeAvailable bool          `json:"customer_type_available"`
	UndatedRows           int           `json:"undated_rows"`
}

// Executives returns the distinct sales executives in row order of first
// appearance, empty names excluded.
func Executives(rows []Transaction) []string {
	return distinct(rows, func(t Transaction) string { return t.SalesExecutive })
}

// Customers returns the distinct customer names, empty names excluded.
func Customers(rows []Transaction) []string {
	return distinct(rows, func(t Transaction) string { return t.CustomerName })
}

// CustomerTypes returns the distinct customer types, empty values excluded.
func CustomerTypes(rows []Transaction) []string {
	return distinct(rows, func(t Transaction) string { return t.CustomerType })
}

// DateBounds returns the earliest and latest transaction dates, ignoring
// undated rows. The zero time is returned for both when no row has a date.
func DateBounds(rows []Transaction) (time.Time, time.Time) {
	var min, max time.Time
	for _, t := range rows {
		if !t.HasDate() {
			continue
		}
		if min.IsZero() || t.Date.Before(min) {
			min = t.Date
		}
		if max.IsZero() || t.Date.After(max) {
			max = t.Date
		}
	}
	return min, max
}

func distinct(rows []Transaction, key func(Transaction) string) []string {
	seen := make(map[string]struct{}, len(rows))
	out := make([]string, 0, 16)
	for _, t := range rows {
		k := key(t)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
