package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesboard/backend/tests/testutil"
)

func fixturePath(t *testing.T) string {
	t.Helper()
	return testutil.WriteLedgerWorkbook(t, "ledger.xlsx", [][]any{
		testutil.Row("2024-01-05", "Alice", "Acme", "Dealer", 0, 100, 0, 40, 0),
		testutil.Row("2024-01-20", "Alice", "Birch", "Retail", 0, 50, 0, 50, 0),
		testutil.Row("2024-02-03", "Bob", "Acme", "Dealer", 20, 200, 10, 0, 5),
	})
}

func getJSON(t *testing.T, engine http.Handler, url string) (int, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestReportAPIEndToEnd(t *testing.T) {
	path := fixturePath(t)
	engine := testutil.NewAPIServer(t, path)

	t.Run("sales history totals", func(t *testing.T) {
		code, body := getJSON(t, engine, "/api/v1/reports/sales/history")
		require.Equal(t, http.StatusOK, code)

		data := body["data"].(map[string]any)
		assert.Len(t, data["rows"], 3)
		totals := data["totals"].(map[string]any)
		assert.InDelta(t, 350.0, totals["sales_amount"], 1e-9)
		assert.InDelta(t, 265.0, totals["outstanding"], 1e-9)
	})

	t.Run("executive summary", func(t *testing.T) {
		code, body := getJSON(t, engine, "/api/v1/reports/executives/summary")
		require.Equal(t, http.StatusOK, code)

		groups := body["data"].([]any)
		require.Len(t, groups, 2)
		alice := groups[0].(map[string]any)
		bob := groups[1].(map[string]any)
		assert.InDelta(t, 150.0, alice["sales_amount"], 1e-9)
		assert.InDelta(t, 200.0, bob["sales_amount"], 1e-9)
	})

	t.Run("overview outstanding", func(t *testing.T) {
		code, body := getJSON(t, engine, "/api/v1/reports/overview")
		require.Equal(t, http.StatusOK, code)

		data := body["data"].(map[string]any)
		assert.InDelta(t, 265.0, data["total_outstanding"], 1e-9)

		monthly := data["monthly_summary"].([]any)
		require.Len(t, monthly, 2)
		assert.Equal(t, "2024-01", monthly[0].(map[string]any)["key"])
	})

	t.Run("category summary groups by type", func(t *testing.T) {
		code, body := getJSON(t, engine, "/api/v1/reports/categories/summary")
		require.Equal(t, http.StatusOK, code)

		data := body["data"].(map[string]any)
		assert.Equal(t, true, data["available"])
		groups := data["groups"].([]any)
		require.Len(t, groups, 2)
		assert.Equal(t, "Dealer", groups[0].(map[string]any)["key"])
	})

	t.Run("date range filter", func(t *testing.T) {
		code, body := getJSON(t, engine,
			"/api/v1/reports/sales/history?start_date=2024-02-01&end_date=2024-02-28")
		require.Equal(t, http.StatusOK, code)

		data := body["data"].(map[string]any)
		rows := data["rows"].([]any)
		require.Len(t, rows, 1)
		assert.InDelta(t, 205.0, rows[0].(map[string]any)["outstanding"], 1e-9)
	})

	t.Run("workbook export", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reports/export/customers/outstanding", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	})
}

func TestLedgerRefreshPicksUpChanges(t *testing.T) {
	path := fixturePath(t)
	engine := testutil.NewAPIServer(t, path)

	code, body := getJSON(t, engine, "/api/v1/ledger/info")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(3), body["data"].(map[string]any)["rows"])

	// Replace the source file; the cached snapshot must not change until
	// an explicit refresh.
	updated := testutil.WriteLedgerWorkbook(t, "ledger-v2.xlsx", [][]any{
		testutil.Row("2024-01-05", "Alice", "Acme", "Dealer", 0, 100, 0, 40, 0),
		testutil.Row("2024-01-20", "Alice", "Birch", "Retail", 0, 50, 0, 50, 0),
		testutil.Row("2024-02-03", "Bob", "Acme", "Dealer", 20, 200, 10, 0, 5),
		testutil.Row("2024-03-11", "Bob", "Cedar", "Retail", 0, 75, 0, 25, 0),
	})
	require.NoError(t, os.Rename(updated, path))

	code, body = getJSON(t, engine, "/api/v1/ledger/info")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(3), body["data"].(map[string]any)["rows"])

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/ledger/refresh", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var refreshed map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &refreshed))
	assert.Equal(t, float64(4), refreshed["data"].(map[string]any)["rows"])

	code, body = getJSON(t, engine, "/api/v1/reports/sales/history")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["data"].(map[string]any)["rows"].([]any), 4)
}
