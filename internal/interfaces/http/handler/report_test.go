package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	reportapp "github.com/salesboard/backend/internal/application/report"
	"github.com/salesboard/backend/internal/domain/ledger"
	"github.com/salesboard/backend/internal/infrastructure/cache"
	"github.com/salesboard/backend/internal/interfaces/http/router"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixedSource struct {
	snap *ledger.Snapshot
}

func (s *fixedSource) Load(ctx context.Context, path string) (*ledger.Snapshot, error) {
	return s.snap, nil
}

func (s *fixedSource) Refresh(ctx context.Context, path string) (*ledger.Snapshot, error) {
	return s.snap, nil
}

func (s *fixedSource) Stats() cache.Stats {
	return cache.Stats{Hits: 2, Misses: 1, Loads: 1}
}

func amt(v float64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromFloat(v))
}

func testEngine(t *testing.T) *gin.Engine {
	t.Helper()

	date := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		require.NoError(t, err)
		return d
	}

	snap := &ledger.Snapshot{
		SourcePath:            "ledger.xlsx",
		CustomerTypeAvailable: true,
		LoadedAt:              date("2024-03-01"),
		Rows: []ledger.Transaction{
			{Date: date("2024-01-05"), SalesExecutive: "Alice", CustomerName: "Acme", CustomerType: "Dealer",
				SalesAmount: amt(100), PaidAmount: amt(40)},
			{Date: date("2024-01-20"), SalesExecutive: "Alice", CustomerName: "Birch", CustomerType: "Retail",
				SalesAmount: amt(50), PaidAmount: amt(50)},
			{Date: date("2024-02-03"), SalesExecutive: "Bob", CustomerName: "Acme", CustomerType: "Dealer",
				OpeningBalance: amt(20), SalesAmount: amt(200), SalesReturn: amt(10), CustomerCashback: amt(5)},
		},
	}

	svc := reportapp.NewReportService(&fixedSource{snap: snap}, "ledger.xlsx", zap.NewNop())

	engine := gin.New()
	router.NewRouter(engine).
		Register(NewReportHandler(svc)).
		Register(NewLedgerHandler(svc)).
		Register(NewSystemHandler()).
		Setup()
	return engine
}

func getJSON(t *testing.T, engine *gin.Engine, url string) (int, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestGetSalesHistory(t *testing.T) {
	engine := testEngine(t)

	t.Run("unfiltered", func(t *testing.T) {
		code, body := getJSON(t, engine, "/api/v1/reports/sales/history")
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, true, body["success"])

		data := body["data"].(map[string]any)
		assert.Len(t, data["rows"], 3)
		totals := data["totals"].(map[string]any)
		assert.InDelta(t, 265.0, totals["outstanding"], 1e-9)
	})

	t.Run("filtered by executive and range", func(t *testing.T) {
		code, body := getJSON(t, engine,
			"/api/v1/reports/sales/history?executive=Alice&start_date=2024-01-01&end_date=2024-01-10")
		require.Equal(t, http.StatusOK, code)

		data := body["data"].(map[string]any)
		rows := data["rows"].([]any)
		require.Len(t, rows, 1)
		assert.Equal(t, "Acme", rows[0].(map[string]any)["customer_name"])
	})

	t.Run("malformed date is rejected", func(t *testing.T) {
		code, body := getJSON(t, engine, "/api/v1/reports/sales/history?start_date=01-05-2024")
		require.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, false, body["success"])
	})
}

func TestGetExecutiveReports(t *testing.T) {
	engine := testEngine(t)

	t.Run("transactions require an executive", func(t *testing.T) {
		code, body := getJSON(t, engine, "/api/v1/reports/executives/transactions")
		require.Equal(t, http.StatusBadRequest, code)
		errInfo := body["error"].(map[string]any)
		assert.Equal(t, "ERR_INVALID_INPUT", errInfo["code"])
	})

	t.Run("summary groups by executive", func(t *testing.T) {
		code, body := getJSON(t, engine, "/api/v1/reports/executives/summary")
		require.Equal(t, http.StatusOK, code)

		groups := body["data"].([]any)
		require.Len(t, groups, 2)
		first := groups[0].(map[string]any)
		assert.Equal(t, "Alice", first["key"])
		assert.InDelta(t, 150.0, first["sales_amount"], 1e-9)
	})

	t.Run("customer ranking for one executive", func(t *testing.T) {
		code, body := getJSON(t, engine,
			"/api/v1/reports/executives/customers/outstanding?executive=Bob")
		require.Equal(t, http.StatusOK, code)

		ranked := body["data"].([]any)
		require.Len(t, ranked, 1)
		top := ranked[0].(map[string]any)
		assert.Equal(t, float64(1), top["rank"])
		assert.InDelta(t, 205.0, top["outstanding"], 1e-9)
	})
}

func TestGetCategoryTransactions(t *testing.T) {
	engine := testEngine(t)

	t.Run("explicit empty selection returns nothing", func(t *testing.T) {
		code, body := getJSON(t, engine, "/api/v1/reports/categories/transactions?customer_type=")
		require.Equal(t, http.StatusOK, code)

		data := body["data"].(map[string]any)
		assert.Equal(t, true, data["available"])
		assert.Len(t, data["rows"], 0)
	})

	t.Run("selected types are returned", func(t *testing.T) {
		code, body := getJSON(t, engine, "/api/v1/reports/categories/transactions?customer_type=Dealer")
		require.Equal(t, http.StatusOK, code)

		data := body["data"].(map[string]any)
		assert.Len(t, data["rows"], 2)
	})
}

func TestGetCustomerOutstanding(t *testing.T) {
	engine := testEngine(t)

	code, body := getJSON(t, engine, "/api/v1/reports/customers/outstanding?top_n=1")
	require.Equal(t, http.StatusOK, code)

	ranked := body["data"].([]any)
	require.Len(t, ranked, 1)
	top := ranked[0].(map[string]any)
	assert.Equal(t, "Acme", top["key"])
	assert.InDelta(t, 265.0, top["outstanding"], 1e-9)
}

func TestLedgerEndpoints(t *testing.T) {
	engine := testEngine(t)

	code, body := getJSON(t, engine, "/api/v1/ledger/info")
	require.Equal(t, http.StatusOK, code)
	data := body["data"].(map[string]any)
	assert.Equal(t, "ledger.xlsx", data["source_path"])
	assert.Equal(t, float64(3), data["rows"])

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/ledger/refresh", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestExportSalesHistory(t *testing.T) {
	engine := testEngine(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reports/export/sales/history", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sales History")
	require.NoError(t, err)
	// header + 3 data rows + totals row
	assert.Len(t, rows, 5)
}

func TestSystemEndpoints(t *testing.T) {
	engine := testEngine(t)

	code, body := getJSON(t, engine, "/api/v1/system/ping")
	require.Equal(t, http.StatusOK, code)
	data := body["data"].(map[string]any)
	assert.Equal(t, "pong", data["message"])
}
