package report

import (
	"context"

	"github.com/salesboard/backend/internal/domain/ledger"
	"github.com/salesboard/backend/internal/domain/shared"
)

// SalesHistory returns the filtered ledger rows with per-row outstanding
// balances and overall totals.
func (s *ReportService) SalesHistory(ctx context.Context, filter ReportFilter) (*TransactionsResponse, error) {
	rows, err := s.filtered(ctx, filter)
	if err != nil {
		return nil, err
	}
	return transactionsResponse(rows), nil
}

// ExecutiveTransactions returns the rows of a single sales executive.
func (s *ReportService) ExecutiveTransactions(ctx context.Context, filter ReportFilter) (*TransactionsResponse, error) {
	if filter.Executive == "" {
		return nil, shared.ErrInvalidInput
	}
	rows, err := s.filtered(ctx, filter)
	if err != nil {
		return nil, err
	}
	return transactionsResponse(rows), nil
}

// CustomerTransactions returns the rows of a single customer.
func (s *ReportService) CustomerTransactions(ctx context.Context, filter ReportFilter) (*TransactionsResponse, error) {
	if filter.Customer == "" {
		return nil, shared.ErrInvalidInput
	}
	rows, err := s.filtered(ctx, filter)
	if err != nil {
		return nil, err
	}
	return transactionsResponse(rows), nil
}

// CategoryTransactionsResponse couples the rows of the selected customer
// types with a per-executive summary over the same rows.
type CategoryTransactionsResponse struct {
	Available        bool                   `json:"available"`
	Rows             []TransactionResponse  `json:"rows"`
	Totals           TotalsResponse         `json:"totals"`
	ExecutiveSummary []GroupSummaryResponse `json:"executive_summary"`
}

// CategoryTransactions returns the rows for a set of customer types. An
// explicitly empty set selects nothing. When the source has no customer_type
// column the report is marked unavailable instead of failing.
func (s *ReportService) CategoryTransactions(ctx context.Context, filter ReportFilter) (*CategoryTransactionsResponse, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if !snap.CustomerTypeAvailable {
		return &CategoryTransactionsResponse{
			Available:        false,
			Rows:             []TransactionResponse{},
			ExecutiveSummary: []GroupSummaryResponse{},
		}, nil
	}

	if filter.CustomerTypes == nil {
		filter.CustomerTypes = []string{}
	}
	rows := filter.domain().Apply(snap.Rows)
	txs := transactionsResponse(rows)
	return &CategoryTransactionsResponse{
		Available:        true,
		Rows:             txs.Rows,
		Totals:           txs.Totals,
		ExecutiveSummary: groupResponses(ledger.Aggregate(rows, ledger.ByExecutive)),
	}, nil
}
