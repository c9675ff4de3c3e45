package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReport_Sort(t *testing.T) {
	report := Report{Rows: []AccountSummary{
		{Account: "b/acct0"},
		{Account: "a/acct1"},
		{Account: "a/acct0"},
	}}

	report.Sort()

	assert.Equal(t, "a/acct0", report.Rows[0].Account)
	assert.Equal(t, "a/acct1", report.Rows[1].Account)
	assert.Equal(t, "b/acct0", report.Rows[2].Account)
}

func TestReport_Totals(t *testing.T) {
	report := Report{Rows: []AccountSummary{
		{Account: "a", Add: 1, Change: 2, Destroy: 3},
		{Account: "b", Add: 4},
		{Account: "c", Add: 100, Err: "unreadable"},
	}}

	add, change, destroy := report.Totals()

	// failed rows never contribute to totals
	assert.Equal(t, 5, add)
	assert.Equal(t, 2, change)
	assert.Equal(t, 3, destroy)
}

func TestReport_Failures(t *testing.T) {
	report := Report{Rows: []AccountSummary{
		{Account: "a"},
		{Account: "b", Err: "boom"},
	}}

	assert.True(t, report.HasFailures())
	assert.Equal(t, 1, report.FailureCount())

	assert.False(t, Report{}.HasFailures())
}

func TestAccountSummary_HasChanges(t *testing.T) {
	assert.False(t, AccountSummary{}.HasChanges())
	assert.True(t, AccountSummary{Add: 1}.HasChanges())
	assert.True(t, AccountSummary{Change: 1}.HasChanges())
	assert.True(t, AccountSummary{Destroy: 1}.HasChanges())
}

func TestResourceChange_HasAction(t *testing.T) {
	rc := ResourceChange{Actions: []Action{ActionDelete, ActionCreate}}

	assert.True(t, rc.HasAction(ActionDelete))
	assert.True(t, rc.HasAction(ActionCreate))
	assert.False(t, rc.HasAction(ActionUpdate))
}
