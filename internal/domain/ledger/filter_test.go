package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRows() []Transaction {
	return []Transaction{
		{Date: day("2024-01-05"), SalesExecutive: "Alice", CustomerName: "Acme", CustomerType: "Dealer", SalesAmount: d(100)},
		{Date: day("2024-01-20"), SalesExecutive: "Alice", CustomerName: "Birch", CustomerType: "Retail", SalesAmount: d(50)},
		{Date: day("2024-02-03"), SalesExecutive: "Bob", CustomerName: "Acme", CustomerType: "Dealer", SalesAmount: d(200)},
		{Date: day("2024-03-11"), SalesExecutive: "Bob", CustomerName: "Cedar", CustomerType: "", SalesAmount: d(75)},
	}
}

func TestFilterApply(t *testing.T) {
	rows := sampleRows()

	t.Run("zero filter keeps everything", func(t *testing.T) {
		assert.Len(t, Filter{}.Apply(rows), 4)
	})

	t.Run("executive equality", func(t *testing.T) {
		got := Filter{Executive: "Alice"}.Apply(rows)
		require.Len(t, got, 2)
		assert.Equal(t, "Acme", got[0].CustomerName)
		assert.Equal(t, "Birch", got[1].CustomerName)
	})

	t.Run("customer equality", func(t *testing.T) {
		got := Filter{Customer: "Acme"}.Apply(rows)
		require.Len(t, got, 2)
		assert.Equal(t, "Alice", got[0].SalesExecutive)
		assert.Equal(t, "Bob", got[1].SalesExecutive)
	})

	t.Run("customer type set membership", func(t *testing.T) {
		got := Filter{CustomerTypes: []string{"Dealer"}}.Apply(rows)
		assert.Len(t, got, 2)
	})

	t.Run("explicit empty type set matches nothing", func(t *testing.T) {
		got := Filter{CustomerTypes: []string{}}.Apply(rows)
		assert.Empty(t, got)
	})

	t.Run("nil type set is no constraint", func(t *testing.T) {
		got := Filter{CustomerTypes: nil}.Apply(rows)
		assert.Len(t, got, 4)
	})

	t.Run("date range is inclusive at both ends", func(t *testing.T) {
		start, end := day("2024-01-05"), day("2024-02-03")
		got := Filter{StartDate: &start, EndDate: &end}.Apply(rows)
		assert.Len(t, got, 3)
	})

	t.Run("inverted range selects nothing", func(t *testing.T) {
		start, end := day("2024-03-01"), day("2024-01-01")
		got := Filter{StartDate: &start, EndDate: &end}.Apply(rows)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("criteria compose with AND", func(t *testing.T) {
		start := day("2024-01-10")
		got := Filter{Executive: "Alice", StartDate: &start}.Apply(rows)
		require.Len(t, got, 1)
		assert.Equal(t, "Birch", got[0].CustomerName)
	})

	t.Run("no match yields empty not nil", func(t *testing.T) {
		got := Filter{Executive: "Zoe"}.Apply(rows)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("undated rows never match a date range", func(t *testing.T) {
		withUndated := append(sampleRows(), Transaction{SalesExecutive: "Alice", CustomerName: "Dune", SalesAmount: d(30)})

		assert.Len(t, Filter{}.Apply(withUndated), 5)

		start := day("2024-01-01")
		got := Filter{StartDate: &start}.Apply(withUndated)
		assert.Len(t, got, 4)
		for _, tx := range got {
			assert.True(t, tx.HasDate())
		}

		end := day("2024-12-31")
		assert.Len(t, Filter{EndDate: &end}.Apply(withUndated), 4)
	})

	t.Run("applying the same filter twice changes nothing", func(t *testing.T) {
		start, end := day("2024-01-01"), day("2024-02-28")
		f := Filter{Executive: "Alice", CustomerTypes: []string{"Dealer", "Retail"}, StartDate: &start, EndDate: &end}

		once := f.Apply(rows)
		require.NotEmpty(t, once)
		assert.Equal(t, once, f.Apply(once))
	})
}

func TestFilterMatchesOpenEndedRange(t *testing.T) {
	tx := Transaction{Date: day("2024-06-15")}
	from := day("2024-06-01")
	assert.True(t, Filter{StartDate: &from}.Matches(tx))

	until := day("2024-06-01")
	assert.False(t, Filter{EndDate: &until}.Matches(tx))
}
