package report

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/salesboard/backend/internal/domain/ledger"
	"github.com/salesboard/backend/internal/domain/shared"
)

func outstandingOf(g ledger.GroupTotals) decimal.Decimal { return g.Outstanding }
func salesOf(g ledger.GroupTotals) decimal.Decimal       { return g.SalesAmount }

// CustomerOutstanding returns per-customer totals ranked by outstanding
// balance, largest first. TopN limits the ranking; zero keeps every customer.
func (s *ReportService) CustomerOutstanding(ctx context.Context, filter ReportFilter) ([]RankedGroupResponse, error) {
	rows, err := s.filtered(ctx, filter)
	if err != nil {
		return nil, err
	}
	groups := ledger.Aggregate(rows, ledger.ByCustomer)
	n := filter.TopN
	if n <= 0 {
		n = len(groups)
	}
	return rankedResponses(ledger.TopN(groups, n, outstandingOf)), nil
}

// ExecutiveCustomers returns the per-customer totals within one executive.
func (s *ReportService) ExecutiveCustomers(ctx context.Context, filter ReportFilter) ([]GroupSummaryResponse, error) {
	if filter.Executive == "" {
		return nil, shared.ErrInvalidInput
	}
	rows, err := s.filtered(ctx, filter)
	if err != nil {
		return nil, err
	}
	return groupResponses(ledger.Aggregate(rows, ledger.ByCustomer)), nil
}

// ExecutiveCustomerOutstanding ranks one executive's customers by what they
// still owe.
func (s *ReportService) ExecutiveCustomerOutstanding(ctx context.Context, filter ReportFilter) ([]RankedGroupResponse, error) {
	if filter.Executive == "" {
		return nil, shared.ErrInvalidInput
	}
	rows, err := s.filtered(ctx, filter)
	if err != nil {
		return nil, err
	}
	groups := ledger.Aggregate(rows, ledger.ByCustomer)
	n := filter.TopN
	if n <= 0 {
		n = len(groups)
	}
	return rankedResponses(ledger.TopN(groups, n, outstandingOf)), nil
}

// ExecutiveSummary returns per-executive totals including commissions.
func (s *ReportService) ExecutiveSummary(ctx context.Context, filter ReportFilter) ([]GroupSummaryResponse, error) {
	rows, err := s.filtered(ctx, filter)
	if err != nil {
		return nil, err
	}
	return groupResponses(ledger.Aggregate(rows, ledger.ByExecutive)), nil
}

// DateExecutiveSummary groups by day and executive.
func (s *ReportService) DateExecutiveSummary(ctx context.Context, filter ReportFilter) ([]GroupSummaryResponse, error) {
	rows, err := s.filtered(ctx, filter)
	if err != nil {
		return nil, err
	}
	return groupResponses(ledger.Aggregate(rows, ledger.ByDay, ledger.ByExecutive)), nil
}

// CategorySummaryResponse marks whether the customer_type column exists in
// the source; when it does not the groups are empty rather than an error.
type CategorySummaryResponse struct {
	Available bool                   `json:"available"`
	Groups    []GroupSummaryResponse `json:"groups"`
}

// CategorySummary returns per-customer-type totals.
func (s *ReportService) CategorySummary(ctx context.Context, filter ReportFilter) (*CategorySummaryResponse, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if !snap.CustomerTypeAvailable {
		return &CategorySummaryResponse{Available: false, Groups: []GroupSummaryResponse{}}, nil
	}
	rows := filter.domain().Apply(snap.Rows)
	return &CategorySummaryResponse{
		Available: true,
		Groups:    groupResponses(ledger.Aggregate(rows, ledger.ByCustomerType)),
	}, nil
}

// DailySummary returns per-day totals.
func (s *ReportService) DailySummary(ctx context.Context, filter ReportFilter) ([]GroupSummaryResponse, error) {
	rows, err := s.filtered(ctx, filter)
	if err != nil {
		return nil, err
	}
	return groupResponses(ledger.Aggregate(rows, ledger.ByDay)), nil
}

// CustomerDailySummary groups by day and customer.
func (s *ReportService) CustomerDailySummary(ctx context.Context, filter ReportFilter) ([]GroupSummaryResponse, error) {
	rows, err := s.filtered(ctx, filter)
	if err != nil {
		return nil, err
	}
	return groupResponses(ledger.Aggregate(rows, ledger.ByDay, ledger.ByCustomer)), nil
}

// MonthlyExecutiveTrend returns the month-by-month series per executive.
func (s *ReportService) MonthlyExecutiveTrend(ctx context.Context, filter ReportFilter) ([]GroupSummaryResponse, error) {
	rows, err := s.filtered(ctx, filter)
	if err != nil {
		return nil, err
	}
	return groupResponses(ledger.Aggregate(rows, ledger.ByMonth, ledger.ByExecutive)), nil
}

// CustomerTrendResponse carries the ranked customers and their monthly series.
type CustomerTrendResponse struct {
	Customers []string               `json:"customers"`
	Series    []GroupSummaryResponse `json:"series"`
}

// TopCustomerTrend picks the customers with the highest total sales and
// returns their monthly sales series. TopN defaults to 5.
func (s *ReportService) TopCustomerTrend(ctx context.Context, filter ReportFilter) (*CustomerTrendResponse, error) {
	rows, err := s.filtered(ctx, filter)
	if err != nil {
		return nil, err
	}

	n := filter.TopN
	if n <= 0 {
		n = 5
	}
	leaders := ledger.TopN(ledger.Aggregate(rows, ledger.ByCustomer), n, salesOf)
	names := make([]string, len(leaders))
	keep := make(map[string]struct{}, len(leaders))
	for i, g := range leaders {
		names[i] = g.Key
		keep[g.Key] = struct{}{}
	}

	series := make([]ledger.GroupTotals, 0)
	for _, g := range ledger.Aggregate(rows, ledger.ByMonth, ledger.ByCustomer) {
		if _, ok := keep[g.SubKey]; ok {
			series = append(series, g)
		}
	}

	return &CustomerTrendResponse{
		Customers: names,
		Series:    groupResponses(series),
	}, nil
}

// CommissionSummary returns per-executive commission totals.
func (s *ReportService) CommissionSummary(ctx context.Context, filter ReportFilter) ([]GroupSummaryResponse, error) {
	rows, err := s.filtered(ctx, filter)
	if err != nil {
		return nil, err
	}
	return groupResponses(ledger.Aggregate(rows, ledger.ByExecutive)), nil
}
