/*
ledger.go - Validated payment recording

PURPOSE:
  The Ledger is the write path for payment records. It validates every
  field before anything touches the store, so a rejected payment leaves no
  partial state behind.

VALIDATION:
  AddPayment reports every missing or invalid field in a single
  ValidationError rather than failing on the first one. The employee
  reference must resolve to an existing employee.

RECORDING CONVENTIONS:
  - RecordSalaryPayment: type=salary, operation=plus, always.
  - RecordAdvancePayment: type=advance, caller chooses the operation
    (plus = advance owed to the employee, minus = claw-back).
  - RecordCalculatedSalary: pays out Calculation.RemainingSalary with the
    breakdown note and attendance attached.

SEE ALSO:
  - store.go: The persistence interfaces underneath
  - calculator.go: The computation that precedes a salary payout
*/
package payroll

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ledger validates and records payments against the stores.
type Ledger struct {
	employees EmployeeStore
	payments  PaymentStore
}

func NewLedger(employees EmployeeStore, payments PaymentStore) *Ledger {
	return &Ledger{employees: employees, payments: payments}
}

// =============================================================================
// WRITE PATH
// =============================================================================

// AddPayment validates the record, assigns a fresh identifier, and appends
// it. The input's ID field is ignored.
func (l *Ledger) AddPayment(ctx context.Context, p Payment) (Payment, error) {
	if err := validatePayment(p); err != nil {
		return Payment{}, err
	}

	// The employee reference must resolve before anything is written.
	if _, err := l.employees.GetEmployee(ctx, p.EmployeeID); err != nil {
		return Payment{}, err
	}

	p.ID = uuid.NewString()
	if err := l.payments.AppendPayment(ctx, p); err != nil {
		return Payment{}, err
	}
	return p, nil
}

// DeletePayment removes a record. Deleting twice errors the second time.
func (l *Ledger) DeletePayment(ctx context.Context, id string) error {
	return l.payments.DeletePayment(ctx, id)
}

// Payments returns ledger entries matching the filter.
func (l *Ledger) Payments(ctx context.Context, f PaymentFilter) ([]Payment, error) {
	return l.payments.ListPayments(ctx, f)
}

// =============================================================================
// RECORDING CONVENTIONS
// =============================================================================

// RecordSalaryPayment appends a salary payout. Salary payments always carry
// operation=plus.
func (l *Ledger) RecordSalaryPayment(ctx context.Context, employeeID string, date Date, amount decimal.Decimal, note string, att *Attendance) (Payment, error) {
	return l.AddPayment(ctx, Payment{
		EmployeeID: employeeID,
		Amount:     amount,
		Date:       date,
		Note:       note,
		Type:       TypeSalary,
		Operation:  OpPlus,
		Attendance: att,
	})
}

// RecordAdvancePayment appends an advance with the given operation.
func (l *Ledger) RecordAdvancePayment(ctx context.Context, employeeID string, date Date, amount decimal.Decimal, note string, op Operation) (Payment, error) {
	return l.AddPayment(ctx, Payment{
		EmployeeID: employeeID,
		Amount:     amount,
		Date:       date,
		Note:       note,
		Type:       TypeAdvance,
		Operation:  op,
	})
}

// RecordCalculatedSalary pays out the remaining balance of a calculation,
// recording the breakdown note and attendance with it. Re-running the
// calculation afterward reflects this entry in PaidSalary.
func (l *Ledger) RecordCalculatedSalary(ctx context.Context, calc Calculation, payDate Date) (Payment, error) {
	return l.RecordSalaryPayment(ctx, calc.EmployeeID, payDate, calc.RemainingSalary, calc.BreakdownNote(), calc.Attendance())
}

// =============================================================================
// VALIDATION
// =============================================================================

func validatePayment(p Payment) error {
	fields := make(map[string]string)

	if p.EmployeeID == "" {
		fields["employeeId"] = "required"
	}
	if !p.Amount.IsPositive() {
		fields["amount"] = "must be positive"
	}
	if p.Date.IsZero() {
		fields["date"] = "required"
	}
	if !p.Type.Valid() {
		fields["type"] = "must be salary or advance"
	}
	if !p.Operation.Valid() {
		fields["operation"] = "must be plus or minus"
	}
	if att := p.Attendance; att != nil {
		switch {
		case att.TotalDays < 0 || att.PresentDays < 0 || att.AbsentDays < 0:
			fields["attendance"] = "day counts must be non-negative"
		case att.PresentDays+att.AbsentDays != att.TotalDays:
			fields["attendance"] = "presentDays + absentDays must equal totalDays"
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
