// Package report implements the application-level report operations over the
// ledger snapshot. Domain decimals are converted to float64 only here, at the
// response boundary.
package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/salesboard/backend/internal/domain/ledger"
	"github.com/salesboard/backend/internal/infrastructure/cache"
)

// SnapshotSource provides memoized ledger snapshots with refresh control.
type SnapshotSource interface {
	Load(ctx context.Context, path string) (*ledger.Snapshot, error)
	Refresh(ctx context.Context, path string) (*ledger.Snapshot, error)
	Stats() cache.Stats
}

// ReportService provides application-level report operations
type ReportService struct {
	source     SnapshotSource
	sourcePath string
	logger     *zap.Logger
	now        func() time.Time
}

// NewReportService creates a new ReportService reading from the configured
// ledger source path.
func NewReportService(source SnapshotSource, sourcePath string, logger *zap.Logger) *ReportService {
	return &ReportService{
		source:     source,
		sourcePath: sourcePath,
		logger:     logger,
		now:        time.Now,
	}
}

// ReportFilter defines the request filter shared by report operations
type ReportFilter struct {
	StartDate     *time.Time
	EndDate       *time.Time
	Executive     string
	Customer      string
	CustomerTypes []string
	TopN          int
}

func (f ReportFilter) domain() ledger.Filter {
	return ledger.Filter{
		Executive:     f.Executive,
		Customer:      f.Customer,
		CustomerTypes: f.CustomerTypes,
		StartDate:     f.StartDate,
		EndDate:       f.EndDate,
	}
}

// snapshot fetches the cached ledger snapshot.
func (s *ReportService) snapshot(ctx context.Context) (*ledger.Snapshot, error) {
	return s.source.Load(ctx, s.sourcePath)
}

// filtered fetches the snapshot and applies the request filter.
func (s *ReportService) filtered(ctx context.Context, filter ReportFilter) ([]ledger.Transaction, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return filter.domain().Apply(snap.Rows), nil
}

// ===================== Response types =====================

// TransactionResponse is one ledger row with its computed outstanding balance.
// Date is null when the source cell was blank or unreadable.
type TransactionResponse struct {
	Date                 *time.Time `json:"date"`
	SalesExecutive       string     `json:"sales_executive"`
	CustomerName         string     `json:"customer_name"`
	CustomerType         string     `json:"customer_type,omitempty"`
	OpeningBalance       float64    `json:"opening_balance"`
	SalesAmount          float64    `json:"sales_amount"`
	SalesReturn          float64    `json:"sales_return"`
	PaidAmount           float64    `json:"paid_amount"`
	CustomerCashback     float64    `json:"customer_cashback"`
	ExecutiveCommission  float64    `json:"executive_commission"`
	TeamLeaderCommission float64    `json:"teamleader_commission"`
	GMCommission         float64    `json:"gm_commission"`
	Outstanding          float64    `json:"outstanding"`
}

// TotalsResponse sums every measure over a row set
type TotalsResponse struct {
	Transactions         int64   `json:"transactions"`
	OpeningBalance       float64 `json:"opening_balance"`
	SalesAmount          float64 `json:"sales_amount"`
	SalesReturn          float64 `json:"sales_return"`
	PaidAmount           float64 `json:"paid_amount"`
	CustomerCashback     float64 `json:"customer_cashback"`
	ExecutiveCommission  float64 `json:"executive_commission"`
	TeamLeaderCommission float64 `json:"teamleader_commission"`
	GMCommission         float64 `json:"gm_commission"`
	Outstanding          float64 `json:"outstanding"`
}

// GroupSummaryResponse is one aggregated group
type GroupSummaryResponse struct {
	Key    string `json:"key"`
	SubKey string `json:"sub_key,omitempty"`
	TotalsResponse
}

// RankedGroupResponse is one entry of a top-N ranking
type RankedGroupResponse struct {
	Rank int `json:"rank"`
	GroupSummaryResponse
}

// TransactionsResponse couples filtered rows with their totals
type TransactionsResponse struct {
	Rows   []TransactionResponse `json:"rows"`
	Totals TotalsResponse        `json:"totals"`
}

// ===================== Conversions =====================

// toFloat64 converts decimal to float64 for JSON response
func toFloat64(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

func txResponse(t ledger.Transaction) TransactionResponse {
	var date *time.Time
	if t.HasDate() {
		d := t.Date
		date = &d
	}
	return TransactionResponse{
		Date:                 date,
		SalesExecutive:       t.SalesExecutive,
		CustomerName:         t.CustomerName,
		CustomerType:         t.CustomerType,
		OpeningBalance:       toFloat64(ledger.Amount(t.OpeningBalance)),
		SalesAmount:          toFloat64(ledger.Amount(t.SalesAmount)),
		SalesReturn:          toFloat64(ledger.Amount(t.SalesReturn)),
		PaidAmount:           toFloat64(ledger.Amount(t.PaidAmount)),
		CustomerCashback:     toFloat64(ledger.Amount(t.CustomerCashback)),
		ExecutiveCommission:  toFloat64(ledger.Amount(t.ExecutiveCommission)),
		TeamLeaderCommission: toFloat64(ledger.Amount(t.TeamLeaderCommission)),
		GMCommission:         toFloat64(ledger.Amount(t.GMCommission)),
		Outstanding:          toFloat64(ledger.Outstanding(t)),
	}
}

func totalsResponse(g ledger.GroupTotals) TotalsResponse {
	return TotalsResponse{
		Transactions:         g.Transactions,
		OpeningBalance:       toFloat64(g.OpeningBalance),
		SalesAmount:          toFloat64(g.SalesAmount),
		SalesReturn:          toFloat64(g.SalesReturn),
		PaidAmount:           toFloat64(g.PaidAmount),
		CustomerCashback:     toFloat64(g.CustomerCashback),
		ExecutiveCommission:  toFloat64(g.ExecutiveCommission),
		TeamLeaderCommission: toFloat64(g.TeamLeaderCommission),
		GMCommission:         toFloat64(g.GMCommission),
		Outstanding:          toFloat64(g.Outstanding),
	}
}

func groupResponses(groups []ledger.GroupTotals) []GroupSummaryResponse {
	out := make([]GroupSummaryResponse, len(groups))
	for i, g := range groups {
		out[i] = GroupSummaryResponse{
			Key:            g.Key,
			SubKey:         g.SubKey,
			TotalsResponse: totalsResponse(g),
		}
	}
	return out
}

func rankedResponses(groups []ledger.GroupTotals) []RankedGroupResponse {
	out := make([]RankedGroupResponse, len(groups))
	for i, g := range groups {
		out[i] = RankedGroupResponse{
			Rank: i + 1,
			GroupSummaryResponse: GroupSummaryResponse{
				Key:            g.Key,
				SubKey:         g.SubKey,
				TotalsResponse: totalsResponse(g),
			},
		}
	}
	return out
}

func transactionsResponse(rows []ledger.Transaction) *TransactionsResponse {
	out := &TransactionsResponse{
		Rows:   make([]TransactionResponse, len(rows)),
		Totals: totalsResponse(ledger.Totals(rows)),
	}
	for i, t := range rows {
		out.Rows[i] = txResponse(t)
	}
	return out
}
