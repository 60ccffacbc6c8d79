/*
calculator.go - Salary proration and payment reconciliation

PURPOSE:
  Computes what an employee is owed for a date range based on attendance,
  and how much of that remains unpaid after prior salary payments.

THE MODEL:
  entitlement      = monthly salary * present days / total days
  absent deduction = monthly salary - entitlement
  remaining        = entitlement - salary already paid in period

  All arithmetic is decimal, with a single division at the end of the
  entitlement expression. Dividing first (daily rate * absent days) would
  round the non-terminating quotient and let zero-attendance entitlements
  drift below zero; multiplying first keeps zero and full attendance exact
  and the result within [0, monthly salary].

DELIBERATELY UNGUARDED:
  presentDays > totalDays is not clamped. The entitlement then exceeds the
  monthly salary; validating attendance input is the caller's job.

IDEMPOTENT BY CONSTRUCTION:
  Everything here is a pure function over the payment list. Paying the
  remaining balance appends one ledger entry; re-running the calculation
  afterward naturally reflects it in PaidSalary.

SEE ALSO:
  - ledger.go: Recording the payout that follows a calculation
  - report.go: Aggregate totals over the ledger
*/
package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// PRORATION
// =============================================================================

// SalaryForPeriod prorates a monthly salary over a period by attendance.
// A zero totalDays yields zero (defined edge case, not an error).
//
// Multiply before dividing: salary * present / total divides once, so zero
// attendance is exactly zero and full attendance is exactly the monthly
// salary even when salary/total does not terminate.
func SalaryForPeriod(monthlySalary decimal.Decimal, presentDays, totalDays int) decimal.Decimal {
	if totalDays == 0 {
		return decimal.Zero
	}

	return monthlySalary.
		Mul(decimal.NewFromInt(int64(presentDays))).
		Div(decimal.NewFromInt(int64(totalDays)))
}

// PaidSalaryForPeriod sums salary payments for an employee whose date falls
// within the inclusive period. Operation is not applied: salary payments
// are assumed "plus". No matches yields zero.
func PaidSalaryForPeriod(payments []Payment, employeeID string, period Period) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range payments {
		if p.EmployeeID == employeeID && p.Type == TypeSalary && period.Contains(p.Date) {
			sum = sum.Add(p.Amount)
		}
	}
	return sum
}

// =============================================================================
// COMPOSITE CALCULATION
// =============================================================================

// Calculation is the full breakdown returned to the caller. RemainingSalary
// may be negative (overpayment) - a displayable state, not an error.
type Calculation struct {
	EmployeeID      string
	Period          Period
	TotalDays       int
	PresentDays     int
	AbsentDays      int
	BaseSalary      decimal.Decimal
	AbsentDeduction decimal.Decimal
	PaidSalary      decimal.Decimal
	RemainingSalary decimal.Decimal
}

// Calculate runs the full salary computation for an employee over a period.
// Pure: the ledger is read, never written. Callers must validate the period
// (end >= start) before calling.
func Calculate(emp Employee, period Period, presentDays int, payments []Payment) Calculation {
	totalDays := period.TotalDays()
	entitlement := SalaryForPeriod(emp.MonthlySalary, presentDays, totalDays)
	paid := PaidSalaryForPeriod(payments, emp.ID, period)

	return Calculation{
		EmployeeID:      emp.ID,
		Period:          period,
		TotalDays:       totalDays,
		PresentDays:     presentDays,
		AbsentDays:      totalDays - presentDays,
		BaseSalary:      emp.MonthlySalary,
		AbsentDeduction: emp.MonthlySalary.Sub(entitlement),
		PaidSalary:      paid,
		RemainingSalary: entitlement.Sub(paid),
	}
}

// Attendance returns the day-count breakdown to attach to the payout.
func (c Calculation) Attendance() *Attendance {
	return &Attendance{
		TotalDays:   c.TotalDays,
		PresentDays: c.PresentDays,
		AbsentDays:  c.AbsentDays,
	}
}

// BreakdownNote renders the calculation as the human-readable note recorded
// with the payout, so the ledger entry explains itself.
func (c Calculation) BreakdownNote() string {
	return fmt.Sprintf(
		"Salary paid for period %s\n\n"+
			"Total Days: %d\n"+
			"Present Days: %d\n"+
			"Absent Days: %d\n"+
			"Base Salary: %s\n"+
			"Absent Deduction: %s\n"+
			"Already Paid: %s",
		c.Period,
		c.TotalDays,
		c.PresentDays,
		c.AbsentDays,
		FormatCurrency(c.BaseSalary),
		FormatCurrency(c.AbsentDeduction),
		FormatCurrency(c.PaidSalary),
	)
}
