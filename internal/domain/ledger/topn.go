package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// DefaultTopN is the ranking size used when a caller does not ask for one.
const DefaultTopN = 10

// TopN returns the n groups with the largest value under the given measure,
// sorted descending. The sort is stable, so ties keep the ascending key order
// Aggregate produced. n <= 0 falls back to DefaultTopN.
func TopN(groups []GroupTotals, n int, value func(GroupTotals) decimal.Decimal) []GroupTotals {
	if n <= 0 {
		n = DefaultTopN
	}
	ranked := make([]GroupTotals, len(groups))
	copy(ranked, groups)
	sort.SliceStable(ranked, func(i, j int) bool {
		return value(ranked[i]).GreaterThan(value(ranked[j]))
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
