package ledger

import "time"

// Filter defines the selection criteria a report applies before calculating.
// Zero-valued criteria are no-ops; criteria that are set compose with AND.
//
// CustomerTypes distinguishes nil from empty: nil means no constraint, while
// an explicitly provided empty set matches nothing.
type Filter struct {
	Executive     string     `json:"executive,omitempty"`
	Customer      string     `json:"customer,omitempty"`
	CustomerTypes []string   `json:"customer_types,omitempty"`
	StartDate     *time.Time `json:"start_date,omitempty"`
	EndDate       *time.Time `json:"end_date,omitempty"`
}

// Matches reports whether a single transaction satisfies every criterion.
func (f Filter) Matches(t Transaction) bool {
	if f.Executive != "" && t.SalesExecutive != f.Executive {
		return false
	}
	if f.Customer != "" && t.CustomerName != f.Customer {
		return false
	}
	if f.CustomerTypes != nil {
		found := false
		for _, ct := range f.CustomerTypes {
			if t.CustomerType == ct {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.StartDate != nil || f.EndDate != nil {
		if !t.HasDate() {
			return false
		}
		if f.StartDate != nil && t.Date.Before(*f.StartDate) {
			return false
		}
		if f.EndDate != nil && t.Date.After(*f.EndDate) {
			return false
		}
	}
	return true
}

// Apply returns the rows matching the filter, preserving input order.
// An inverted date range (start after end) selects nothing rather than
// failing: it is a degenerate window, not an error.
func (f Filter) Apply(rows []Transaction) []Transaction {
	if f.StartDate != nil && f.EndDate != nil && f.StartDate.After(*f.EndDate) {
		return []Transaction{}
	}
	out := make([]Transaction, 0, len(rows))
	for _, t := range rows {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}
