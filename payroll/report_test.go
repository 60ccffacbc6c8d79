package payroll_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// AGGREGATES
// =============================================================================

func TestTotalAdvance_NetsPlusAndMinus(t *testing.T) {
	// GIVEN: 500 advanced out, 200 clawed back
	payments := []payroll.Payment{
		advancePayment("emp-1", day(2025, time.March, 1), "500", payroll.OpPlus),
		advancePayment("emp-1", day(2025, time.March, 15), "200", payroll.OpMinus),
		salaryPayment("emp-1", day(2025, time.March, 31), "2700"),
	}

	// THEN: the net balance is 300 and the deduction total is 200.
	// The two aggregates are different questions on purpose.
	assert.True(t, dec("300").Equal(payroll.TotalAdvance(payments)))
	assert.True(t, dec("200").Equal(payroll.TotalAdvanceDeduction(payments)))
}

func TestTotalAdvanceDeduction_IgnoresPlusEntries(t *testing.T) {
	payments := []payroll.Payment{
		advancePayment("emp-1", day(2025, time.March, 1), "500", payroll.OpPlus),
		advancePayment("emp-1", day(2025, time.April, 1), "400", payroll.OpPlus),
	}
	assert.True(t, payroll.TotalAdvanceDeduction(payments).IsZero())
	assert.True(t, dec("900").Equal(payroll.TotalAdvance(payments)))
}

func TestTotalSalaryPaid_IgnoresOperation(t *testing.T) {
	payments := []payroll.Payment{
		salaryPayment("emp-1", day(2025, time.March, 31), "2700"),
		salaryPayment("emp-1", day(2025, time.April, 30), "3000"),
		advancePayment("emp-1", day(2025, time.April, 1), "500", payroll.OpPlus),
	}
	assert.True(t, dec("5700").Equal(payroll.TotalSalaryPaid(payments)))
}

func TestAggregates_EmptySetIsZero(t *testing.T) {
	assert.True(t, payroll.TotalSalaryPaid(nil).IsZero())
	assert.True(t, payroll.TotalAdvance(nil).IsZero())
	assert.True(t, payroll.TotalAdvanceDeduction(nil).IsZero())
}

// =============================================================================
// REPORT BUILDING
// =============================================================================

func reportFixture() []payroll.Payment {
	return []payroll.Payment{
		salaryPayment("emp-1", day(2025, time.March, 31), "2700"),
		advancePayment("emp-1", day(2025, time.March, 5), "500", payroll.OpPlus),
		advancePayment("emp-1", day(2025, time.April, 10), "200", payroll.OpMinus),
		salaryPayment("emp-2", day(2025, time.March, 31), "1800"),
		advancePayment("emp-2", day(2025, time.March, 12), "100", payroll.OpPlus),
	}
}

func admin() payroll.Caller {
	return payroll.Caller{ID: "admin-1", Role: payroll.RoleAdmin}
}

func TestBuildReport_AdminUnfiltered(t *testing.T) {
	r := payroll.BuildReport(reportFixture(), payroll.ReportFilter{}, admin())

	assert.Len(t, r.LineItems, 5)
	assert.True(t, dec("4500").Equal(r.Totals.SalaryPaid))
	assert.True(t, dec("400").Equal(r.Totals.AdvanceBalance))
	assert.True(t, dec("200").Equal(r.Totals.AdvanceDeduction))
}

func TestBuildReport_FilterComposition(t *testing.T) {
	// Employee + type + date window compose; totals cover only survivors.
	from := day(2025, time.March, 1)
	to := day(2025, time.March, 31)
	r := payroll.BuildReport(reportFixture(), payroll.ReportFilter{
		EmployeeID: "emp-1",
		Type:       payroll.TypeAdvance,
		From:       &from,
		To:         &to,
	}, admin())

	require.Len(t, r.LineItems, 1)
	assert.True(t, dec("500").Equal(r.LineItems[0].Amount))
	assert.True(t, r.Totals.SalaryPaid.IsZero())
	assert.True(t, dec("500").Equal(r.Totals.AdvanceBalance))
	assert.True(t, r.Totals.AdvanceDeduction.IsZero())
}

func TestBuildReport_LineItemsSortedByDate(t *testing.T) {
	r := payroll.BuildReport(reportFixture(), payroll.ReportFilter{EmployeeID: "emp-1"}, admin())

	require.Len(t, r.LineItems, 3)
	for i := 1; i < len(r.LineItems); i++ {
		assert.True(t, r.LineItems[i-1].Date.BeforeOrEqual(r.LineItems[i].Date))
	}
}

func TestBuildReport_NonAdminPinnedToOwnPayments(t *testing.T) {
	// GIVEN: a non-admin caller asking for another employee's report
	caller := payroll.Caller{ID: "emp-1", Role: payroll.RoleEmployee}
	r := payroll.BuildReport(reportFixture(), payroll.ReportFilter{EmployeeID: "emp-2"}, caller)

	// THEN: the selector is overridden, not intersected. The caller sees
	// their own payments, never an empty intersection or emp-2's data.
	require.Len(t, r.LineItems, 3)
	for _, p := range r.LineItems {
		assert.Equal(t, "emp-1", p.EmployeeID)
	}
	assert.True(t, dec("2700").Equal(r.Totals.SalaryPaid))
	assert.True(t, dec("300").Equal(r.Totals.AdvanceBalance))
}

func TestBuildReport_EmptyResultHasZeroTotals(t *testing.T) {
	r := payroll.BuildReport(reportFixture(), payroll.ReportFilter{EmployeeID: "nobody"}, admin())

	assert.Empty(t, r.LineItems)
	assert.True(t, r.Totals.SalaryPaid.IsZero())
	assert.True(t, r.Totals.AdvanceBalance.IsZero())
	assert.True(t, r.Totals.AdvanceDeduction.IsZero())
}
