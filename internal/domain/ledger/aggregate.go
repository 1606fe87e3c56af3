package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Dimension identifies a grouping axis for aggregation.
type Dimension string

const (
	ByExecutive    Dimension = "executive"
	ByCustomer     Dimension = "customer"
	ByCustomerType Dimension = "customer_type"
	ByDay          Dimension = "day"
	ByMonth        Dimension = "month"
)

// GroupTotals holds the summed measures for one group. Key carries the first
// dimension's value, SubKey the second dimension's when two were requested.
// Day keys are formatted "2006-01-02" and month keys "2006-01", so sorting
// the string keys is chronological.
type GroupTotals struct {
	Key                  string          `json:"key"`
	SubKey               string          `json:"sub_key,omitempty"`
	Transactions         int64           `json:"transactions"`
	OpeningBalance       decimal.Decimal `json:"opening_balance"`
	SalesAmount          decimal.Decimal `json:"sales_amount"`
	SalesReturn          decimal.Decimal `json:"sales_return"`
	PaidAmount           decimal.Decimal `json:"paid_amount"`
	CustomerCashback     decimal.Decimal `json:"customer_cashback"`
	ExecutiveCommission  decimal.Decimal `json:"executive_commission"`
	TeamLeaderCommission decimal.Decimal `json:"teamleader_commission"`
	GMCommission         decimal.Decimal `json:"gm_commission"`
	Outstanding          decimal.Decimal `json:"outstanding"`
}

func (g *GroupTotals) add(t Transaction) {
	g.Transactions++
	g.OpeningBalance = g.OpeningBalance.Add(amount(t.OpeningBalance))
	g.SalesAmount = g.SalesAmount.Add(amount(t.SalesAmount))
	g.SalesReturn = g.SalesReturn.Add(amount(t.SalesReturn))
	g.PaidAmount = g.PaidAmount.Add(amount(t.PaidAmount))
	g.CustomerCashback = g.CustomerCashback.Add(amount(t.CustomerCashback))
	g.ExecutiveCommission = g.ExecutiveCommission.Add(amount(t.ExecutiveCommission))
	g.TeamLeaderCommission = g.TeamLeaderCommission.Add(amount(t.TeamLeaderCommission))
	g.GMCommission = g.GMCommission.Add(amount(t.GMCommission))
	g.Outstanding = g.Outstanding.Add(Outstanding(t))
}

func dimensionKey(t Transaction, dim Dimension) string {
	switch dim {
	case ByExecutive:
		return t.SalesExecutive
	case ByCustomer:
		return t.CustomerName
	case ByCustomerType:
		return t.CustomerType
	case ByDay:
		if !t.HasDate() {
			return ""
		}
		return t.Day().Format("2006-01-02")
	case ByMonth:
		return t.MonthKey()
	default:
		return ""
	}
}

// Aggregate groups rows by one or two dimensions and sums every measure,
// including the computed outstanding balance. Rows whose group key is empty
// (a blank executive, customer or type cell, or an undated row grouped by
// day or month) are dropped from grouped output.
// Results are ordered ascending by Key, then SubKey.
func Aggregate(rows []Transaction, dims ...Dimension) []GroupTotals {
	if len(dims) == 0 || len(dims) > 2 {
		return []GroupTotals{}
	}

	type compoundKey struct{ key, sub string }
	groups := make(map[compoundKey]*GroupTotals)
	order := make([]compoundKey, 0)

	for _, t := range rows {
		ck := compoundKey{key: dimensionKey(t, dims[0])}
		if ck.key == "" {
			continue
		}
		if len(dims) == 2 {
			ck.sub = dimensionKey(t, dims[1])
			if ck.sub == "" {
				continue
			}
		}
		g, ok := groups[ck]
		if !ok {
			g = &GroupTotals{Key: ck.key, SubKey: ck.sub}
			groups[ck] = g
			order = append(order, ck)
		}
		g.add(t)
	}

	out := make([]GroupTotals, 0, len(order))
	for _, ck := range order {
		out = append(out, *groups[ck])
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Key != out[j].Key {
			return out[i].Key < out[j].Key
		}
		return out[i].SubKey < out[j].SubKey
	})
	return out
}

// Totals sums every measure across rows without grouping.
func Totals(rows []Transaction) GroupTotals {
	var g GroupTotals
	for _, t := range rows {
		g.add(t)
	}
	return g
}
