package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/salesboard/backend/internal/application/report"
)

func TestFileName(t *testing.T) {
	at := time.Date(2024, 2, 15, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "sales-history-20240215-093000.xlsx", FileName("sales-history", at))
}

func TestTableWrite(t *testing.T) {
	table := &Table{
		Sheet:   "Summary",
		Headers: []string{"Customer", "Outstanding"},
		Rows: [][]any{
			{"Acme", 265.0},
			{"Cedar", 50.0},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, table.Write(&buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary"}, f.GetSheetList())

	rows, err := f.GetRows("Summary")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Customer", "Outstanding"}, rows[0])
	assert.Equal(t, "Acme", rows[1][0])
	assert.Equal(t, "265", rows[1][1])
}

func TestSalesHistoryTable(t *testing.T) {
	day := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	resp := &report.TransactionsResponse{
		Rows: []report.TransactionResponse{
			{
				Date:           &day,
				SalesExecutive: "Alice",
				CustomerName:   "Acme",
				CustomerType:   "Dealer",
				SalesAmount:    100,
				PaidAmount:     40,
				Outstanding:    60,
			},
			{
				SalesExecutive: "Alice",
				CustomerName:   "Acme",
				CustomerType:   "Dealer",
				SalesAmount:    500,
				Outstanding:    500,
			},
		},
	}
	resp.Totals.Transactions = 2
	resp.Totals.SalesAmount = 600
	resp.Totals.Outstanding = 560

	table := SalesHistoryTable(resp)
	require.Len(t, table.Rows, 3)
	assert.Equal(t, "2024-01-05", table.Rows[0][0])
	assert.Equal(t, 60.0, table.Rows[0][9])
	assert.Equal(t, "", table.Rows[1][0])
	assert.Equal(t, 500.0, table.Rows[1][9])
	assert.Equal(t, "Total", table.Rows[2][0])
	assert.Equal(t, 560.0, table.Rows[2][9])
}

func TestRankedAndGroupTables(t *testing.T) {
	ranked := []report.RankedGroupResponse{
		{Rank: 1, GroupSummaryResponse: report.GroupSummaryResponse{Key: "Acme"}},
	}
	ranked[0].Outstanding = 265

	outTable := CustomerOutstandingTable(ranked)
	require.Len(t, outTable.Rows, 1)
	assert.Equal(t, []any{1, "Acme", 0.0, 0.0, 265.0}, outTable.Rows[0])

	groups := []report.GroupSummaryResponse{{Key: "Alice"}}
	groups[0].Transactions = 2
	groups[0].SalesAmount = 150

	execTable := ExecutiveSummaryTable(groups)
	assert.Equal(t, "Executive Summary", execTable.Sheet)
	assert.Equal(t, "Alice", execTable.Rows[0][0])
	assert.Equal(t, int64(2), execTable.Rows[0][1])

	dayTable := DailySummaryTable(groups)
	assert.Equal(t, "Date", dayTable.Headers[0])

	groups[0].ExecutiveCommission = 4
	commTable := CommissionSummaryTable(groups)
	assert.Equal(t, []any{"Alice", 150.0, 4.0, 0.0, 0.0}, commTable.Rows[0])
}
