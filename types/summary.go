package types

import "sort"

// AccountSummary aggregates the planned changes for one account.
// Err is set when the account's plan artifact could not be decoded;
// such rows render as dashes, never as zeros.
type AccountSummary struct {
	Account string `json:"account"`
	Add     int    `json:"add"`
	Change  int    `json:"change"`
	Destroy int    `json:"destroy"`
	Err     string `json:"error,omitempty"`
}

// Failed reports whether the account's artifact was unreadable
func (s AccountSummary) Failed() bool {
	return s.Err != ""
}

// HasChanges reports whether any counter is non-zero
func (s AccountSummary) HasChanges() bool {
	return s.Add > 0 || s.Change > 0 || s.Destroy > 0
}

// Report is the final, sorted set of per-account summaries
type Report struct {
	Rows []AccountSummary `json:"rows"`
}

// Sort orders rows lexicographically by account name. Report order
// never depends on filesystem enumeration order.
func (r *Report) Sort() {
	sort.Slice(r.Rows, func(i, j int) bool {
		return r.Rows[i].Account < r.Rows[j].Account
	})
}

// Totals sums the counters across all readable accounts
func (r Report) Totals() (add, change, destroy int) {
	for _, row := range r.Rows {
		if row.Failed() {
			continue
		}
		add += row.Add
		change += row.Change
		destroy += row.Destroy
	}
	return add, change, destroy
}

// HasFailures reports whether any account's artifact was unreadable
func (r Report) HasFailures() bool {
	for _, row := range r.Rows {
		if row.Failed() {
			return true
		}
	}
	return false
}

// FailureCount counts accounts whose artifact was unreadable
func (r Report) FailureCount() int {
	n := 0
	for _, row := range r.Rows {
		if row.Failed() {
			n++
		}
	}
	return n
}
