// Package testutil provides common test utilities for the salesboard backend.
package testutil

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	reportapp "github.com/salesboard/backend/internal/application/report"
	"github.com/salesboard/backend/internal/infrastructure/cache"
	"github.com/salesboard/backend/internal/infrastructure/ledgerfile"
	"github.com/salesboard/backend/internal/interfaces/http/handler"
	"github.com/salesboard/backend/internal/interfaces/http/router"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// LedgerHeaders is the canonical ledger column layout used by fixtures
var LedgerHeaders = []string{
	"date", "sales_executive", "customer_name", "customer_type",
	"opening_balance", "sales_amount", "sales_return", "paid_amount",
	"customer_cashback", "executive_commission", "teamleader_commission", "gm_commission",
}

// WriteLedgerWorkbook writes an xlsx ledger fixture and returns its path.
// Each row must match LedgerHeaders positionally; nil cells stay empty.
func WriteLedgerWorkbook(t *testing.T, name string, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for col, h := range LedgerHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(sheet, cell, h))
	}
	for r, row := range rows {
		for col, v := range row {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, f.SaveAs(path))
	return path
}

// Row builds a fixture row from the common ledger fields
func Row(date, executive, customer, customerType string, amounts ...float64) []any {
	row := []any{date, executive, customer, customerType}
	for _, a := range amounts {
		row = append(row, a)
	}
	if len(amounts) > 8 {
		panic(fmt.Sprintf("too many amount columns: %d", len(amounts)))
	}
	return row
}

// NewAPIServer wires the full HTTP stack over a real ledger file
func NewAPIServer(t *testing.T, sourcePath string) *gin.Engine {
	t.Helper()

	loader := ledgerfile.NewLoader(ledgerfile.WithLogger(zap.NewNop()))
	ledgerCache := cache.NewLedgerCache(loader)
	svc := reportapp.NewReportService(ledgerCache, sourcePath, zap.NewNop())

	engine := gin.New()
	router.NewRouter(engine).
		Register(handler.NewReportHandler(svc)).
		Register(handler.NewLedgerHandler(svc)).
		Register(handler.NewSystemHandler()).
		Setup()
	return engine
}
