/*
report.go - Reconciliation and reporting aggregator

PURPOSE:
  Derives per-employee and per-report totals from a filtered payment set.

THE THREE TOTALS:
  TotalSalaryPaid        sum of amounts over salary entries (operation is
                         ignored; salary payments are always plus)
  TotalAdvance           net advance balance: +amount for plus, -amount for
                         minus, over advance entries
  TotalAdvanceDeduction  sum of amounts over advance+minus entries only.
                         Asymmetric from TotalAdvance on purpose: this is
                         "how much has been clawed back", not a net balance.

ADVANCES ARE DISPLAY-ONLY:
  The net advance balance is never subtracted from a salary entitlement.
  Reconciling advances against salary is a manual bookkeeping step.

CALLER RESTRICTION:
  BuildReport pins non-admin callers to their own employee id. The filter's
  employee selector is overridden, not merely intersected; no filter
  parameter can widen a non-admin's view.
*/
package payroll

import (
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// AGGREGATES
// =============================================================================

// TotalAdvance returns the net advance balance over the payment set:
// plus entries add, minus entries subtract. Non-advance entries are ignored.
func TotalAdvance(payments []Payment) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range payments {
		if p.Type == TypeAdvance {
			sum = sum.Add(p.Operation.Signed(p.Amount))
		}
	}
	return sum
}

// TotalAdvanceDeduction returns the total clawed back: the sum of amounts
// over advance entries with operation=minus only.
func TotalAdvanceDeduction(payments []Payment) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range payments {
		if p.Type == TypeAdvance && p.Operation == OpMinus {
			sum = sum.Add(p.Amount)
		}
	}
	return sum
}

// TotalSalaryPaid returns the sum of amounts over salary entries,
// ignoring operation.
func TotalSalaryPaid(payments []Payment) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range payments {
		if p.Type == TypeSalary {
			sum = sum.Add(p.Amount)
		}
	}
	return sum
}

// =============================================================================
// REPORT
// =============================================================================

// ReportFilter selects the payment set for a report view. Empty EmployeeID
// means "all employees"; empty Type means all types; nil bounds mean no
// lower/upper date limit.
type ReportFilter struct {
	EmployeeID string
	Type       PaymentType
	From       *Date
	To         *Date
}

type ReportTotals struct {
	SalaryPaid       decimal.Decimal
	AdvanceBalance   decimal.Decimal
	AdvanceDeduction decimal.Decimal
}

type Report struct {
	Totals    ReportTotals
	LineItems []Payment
}

// BuildReport filters the payment set and computes the totals over the
// surviving entries. Non-admin callers are always restricted to their own
// payments regardless of the employee selector. Line items are sorted by
// date for display.
func BuildReport(payments []Payment, f ReportFilter, caller Caller) Report {
	if !caller.IsAdmin() {
		f.EmployeeID = caller.ID
	}

	pf := PaymentFilter{EmployeeID: f.EmployeeID, Type: f.Type, From: f.From, To: f.To}

	var items []Payment
	for _, p := range payments {
		if pf.Matches(p) {
			items = append(items, p)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date.Before(items[j].Date)
	})

	return Report{
		Totals: ReportTotals{
			SalaryPaid:       TotalSalaryPaid(items),
			AdvanceBalance:   TotalAdvance(items),
			AdvanceDeduction: TotalAdvanceDeduction(items),
		},
		LineItems: items,
	}
}
