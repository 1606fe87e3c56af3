package export

import (
	"github.com/salesboard/backend/internal/application/report"
)

// SalesHistoryTable lays out filtered ledger rows with a trailing totals row.
func SalesHistoryTable(resp *report.TransactionsResponse) *Table {
	t := &Table{
		Sheet: "Sales History",
		Headers: []string{
			"Date", "Sales Executive", "Customer", "Customer Type",
			"Opening Balance", "Sales Amount", "Sales Return", "Paid Amount",
			"Customer Cashback", "Outstanding",
		},
	}
	for _, r := range resp.Rows {
		dateCell := ""
		if r.Date != nil {
			dateCell = r.Date.Format("2006-01-02")
		}
		t.Rows = append(t.Rows, []any{
			dateCell, r.SalesExecutive, r.CustomerName, r.CustomerType,
			r.OpeningBalance, r.SalesAmount, r.SalesReturn, r.PaidAmount,
			r.CustomerCashback, r.Outstanding,
		})
	}
	t.Rows = append(t.Rows, []any{
		"Total", "", "", "",
		resp.Totals.OpeningBalance, resp.Totals.SalesAmount, resp.Totals.SalesReturn,
		resp.Totals.PaidAmount, resp.Totals.CustomerCashback, resp.Totals.Outstanding,
	})
	return t
}

// CustomerOutstandingTable lays out the ranked outstanding balances.
func CustomerOutstandingTable(rows []report.RankedGroupResponse) *Table {
	t := &Table{
		Sheet:   "Customer Outstanding",
		Headers: []string{"Rank", "Customer", "Sales Amount", "Paid Amount", "Outstanding"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{r.Rank, r.Key, r.SalesAmount, r.PaidAmount, r.Outstanding})
	}
	return t
}

// ExecutiveSummaryTable lays out per-executive totals.
func ExecutiveSummaryTable(groups []report.GroupSummaryResponse) *Table {
	return groupTable("Executive Summary", "Sales Executive", groups)
}

// DailySummaryTable lays out per-day totals.
func DailySummaryTable(groups []report.GroupSummaryResponse) *Table {
	return groupTable("Daily Summary", "Date", groups)
}

// CommissionSummaryTable lays out per-executive commission totals.
func CommissionSummaryTable(groups []report.GroupSummaryResponse) *Table {
	t := &Table{
		Sheet: "Commission Summary",
		Headers: []string{
			"Sales Executive", "Sales Amount",
			"Executive Commission", "Team Leader Commission", "GM Commission",
		},
	}
	for _, g := range groups {
		t.Rows = append(t.Rows, []any{
			g.Key, g.SalesAmount,
			g.ExecutiveCommission, g.TeamLeaderCommission, g.GMCommission,
		})
	}
	return t
}

func groupTable(sheet, keyHeader string, groups []report.GroupSummaryResponse) *Table {
	t := &Table{
		Sheet: sheet,
		Headers: []string{
			keyHeader, "Transactions", "Sales Amount", "Sales Return",
			"Paid Amount", "Customer Cashback", "Outstanding",
		},
	}
	for _, g := range groups {
		t.Rows = append(t.Rows, []any{
			g.Key, g.Transactions, g.SalesAmount, g.SalesReturn,
			g.PaidAmount, g.CustomerCashback, g.Outstanding,
		})
	}
	return t
}
