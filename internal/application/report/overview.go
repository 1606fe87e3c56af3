package report

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/salesboard/backend/internal/domain/ledger"
	"github.com/salesboard/backend/internal/infrastructure/cache"
)

// OverviewResponse is the dashboard landing view: the running month's key
// figures, the all-time market due and the headline rankings.
type OverviewResponse struct {
	Month            string                 `json:"month"`
	MonthSales       float64                `json:"month_sales"`
	MonthPaid        float64                `json:"month_paid"`
	MonthReturn      float64                `json:"month_return"`
	MonthCashback    float64                `json:"month_cashback"`
	TotalOutstanding float64                `json:"total_outstanding"`
	ExecutiveSummary []GroupSummaryResponse `json:"executive_summary"`
	MonthlySummary   []GroupSummaryResponse `json:"monthly_summary"`
	TopCustomers     []RankedGroupResponse  `json:"top_customers"`
}

// Overview builds the dashboard summary. Month figures cover the current
// calendar month; the outstanding total and customer ranking span the whole
// ledger.
func (s *ReportService) Overview(ctx context.Context) (*OverviewResponse, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Second)

	monthRows := (ledger.Filter{StartDate: &monthStart, EndDate: &monthEnd}).Apply(snap.Rows)
	monthTotals := ledger.Totals(monthRows)

	// The executive summary lists this month's sales and deposits, but each
	// executive's due spans the whole ledger.
	execSummary := groupResponses(ledger.Aggregate(monthRows, ledger.ByExecutive))
	allTimeDue := make(map[string]float64)
	for _, g := range ledger.Aggregate(snap.Rows, ledger.ByExecutive) {
		allTimeDue[g.Key] = toFloat64(g.Outstanding)
	}
	for i := range execSummary {
		execSummary[i].Outstanding = allTimeDue[execSummary[i].Key]
	}

	return &OverviewResponse{
		Month:            monthStart.Format("2006-01"),
		MonthSales:       toFloat64(monthTotals.SalesAmount),
		MonthPaid:        toFloat64(monthTotals.PaidAmount),
		MonthReturn:      toFloat64(monthTotals.SalesReturn),
		MonthCashback:    toFloat64(monthTotals.CustomerCashback),
		TotalOutstanding: toFloat64(ledger.TotalOutstanding(snap.Rows)),
		ExecutiveSummary: execSummary,
		MonthlySummary:   groupResponses(ledger.Aggregate(snap.Rows, ledger.ByMonth)),
		TopCustomers:     rankedResponses(ledger.TopN(ledger.Aggregate(snap.Rows, ledger.ByCustomer), 0, salesOf)),
	}, nil
}

// DimensionsResponse lists the distinct filter values the ledger offers.
type DimensionsResponse struct {
	Executives            []string  `json:"executives"`
	Customers             []string  `json:"customers"`
	CustomerTypes         []string  `json:"customer_types"`
	CustomerTypeAvailable bool      `json:"customer_type_available"`
	StartDate             time.Time `json:"start_date"`
	EndDate               time.Time `json:"end_date"`
}

// Dimensions returns the pickable filter values and the ledger's date bounds.
func (s *ReportService) Dimensions(ctx context.Context) (*DimensionsResponse, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	min, max := ledger.DateBounds(snap.Rows)
	return &DimensionsResponse{
		Executives:            ledger.Executives(snap.Rows),
		Customers:             ledger.Customers(snap.Rows),
		CustomerTypes:         ledger.CustomerTypes(snap.Rows),
		CustomerTypeAvailable: snap.CustomerTypeAvailable,
		StartDate:             min,
		EndDate:               max,
	}, nil
}

// LedgerInfoResponse describes the loaded snapshot and cache behavior.
type LedgerInfoResponse struct {
	SourcePath            string      `json:"source_path"`
	Rows                  int         `json:"rows"`
	UndatedRows           int         `json:"undated_rows"`
	LoadedAt              time.Time   `json:"loaded_at"`
	CustomerTypeAvailable bool        `json:"customer_type_available"`
	Cache                 cache.Stats `json:"cache"`
}

// LedgerInfo returns snapshot metadata without forcing a reload.
func (s *ReportService) LedgerInfo(ctx context.Context) (*LedgerInfoResponse, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.info(snap), nil
}

// RefreshLedger discards the cached snapshot and reloads the source file.
func (s *ReportService) RefreshLedger(ctx context.Context) (*LedgerInfoResponse, error) {
	snap, err := s.source.Refresh(ctx, s.sourcePath)
	if err != nil {
		return nil, err
	}
	s.logger.Info("ledger refreshed",
		zap.String("path", snap.SourcePath),
		zap.Int("rows", len(snap.Rows)))
	return s.info(snap), nil
}

func (s *ReportService) info(snap *ledger.Snapshot) *LedgerInfoResponse {
	return &LedgerInfoResponse{
		SourcePath:            snap.SourcePath,
		Rows:                  len(snap.Rows),
		UndatedRows:           snap.UndatedRows,
		LoadedAt:              snap.LoadedAt,
		CustomerTypeAvailable: snap.CustomerTypeAvailable,
		Cache:                 s.source.Stats(),
	}
}
