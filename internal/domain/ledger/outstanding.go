package ledger

import "github.com/shopspring/decimal"

// Outstanding computes the customer outstanding balance for a single row:
//
//	opening_balance + sales_amount - sales_return - paid_amount - customer_cashback
//
// with null cells counting as zero. This is the only place the formula lives;
// every report that shows an outstanding figure goes through it.
func Outstanding(t Transaction) decimal.Decimal {
	return amount(t.OpeningBalance).
		Add(amount(t.SalesAmount)).
		Sub(amount(t.SalesReturn)).
		Sub(amount(t.PaidAmount)).
		Sub(amount(t.CustomerCashback))
}

// TotalOutstanding sums the outstanding balance across rows.
func TotalOutstanding(rows []Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range rows {
		total = total.Add(Outstanding(t))
	}
	return total
}
