/*
Package payroll provides the core payroll ledger engine.

PURPOSE:
  This package contains the domain types and algorithms for tracking
  employees, recording salary and advance payments, and computing
  period-based salary entitlements with attendance deductions.

KEY CONCEPTS IN THIS FILE (types.go):
  - Employee: A payable account with a monthly salary and a role
  - Payment: An immutable ledger entry (salary or advance, plus or minus)
  - Attendance: Optional day-count breakdown attached to a payment
  - FormatCurrency: Display formatting for money amounts

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal to avoid floating-point errors
  2. Signed-by-operation: Payment amounts are always positive; direction
     is carried by Operation, never encoded as a negative amount
  3. No mutation: Payments are created and deleted, never updated

SEE ALSO:
  - calculator.go: Salary proration and reconciliation
  - ledger.go: Validated payment recording
  - report.go: Aggregation and reporting
  - policy.go: Role-based visibility
*/
package payroll

import (
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// ROLES
// =============================================================================

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

func (r Role) Valid() bool { return r == RoleAdmin || r == RoleEmployee }

// =============================================================================
// EMPLOYEE
// =============================================================================

// Employee is a payable account. Code is the human-facing login identifier
// (badge number); ID is the opaque storage identifier that payments reference.
type Employee struct {
	ID            string
	Code          string
	PasswordHash  string
	Name          string
	MonthlySalary decimal.Decimal
	StartDate     Date
	Role          Role
}

func (e Employee) IsAdmin() bool { return e.Role == RoleAdmin }

// =============================================================================
// PAYMENT - Immutable ledger entry
// =============================================================================

type PaymentType string

const (
	TypeSalary  PaymentType = "salary"
	TypeAdvance PaymentType = "advance"
)

func (t PaymentType) Valid() bool { return t == TypeSalary || t == TypeAdvance }

// Operation is the sign convention for a ledger entry. For an advance,
// "plus" adds to what is owed to the employee and "minus" records a
// claw-back of an advance previously given. Salary payments are always
// recorded as "plus"; a deduction-style salary payment is not a defined
// use case.
type Operation string

const (
	OpPlus  Operation = "plus"
	OpMinus Operation = "minus"
)

func (o Operation) Valid() bool { return o == OpPlus || o == OpMinus }

// Signed returns the amount with the operation's sign applied.
func (o Operation) Signed(amount decimal.Decimal) decimal.Decimal {
	if o == OpMinus {
		return amount.Neg()
	}
	return amount
}

// Attendance is the day-count breakdown attached to a calculated salary
// payment. When present, PresentDays + AbsentDays must equal TotalDays.
type Attendance struct {
	TotalDays   int
	PresentDays int
	AbsentDays  int
}

// Payment records a single salary or advance transaction. Amount is always
// positive; Operation carries the direction. Payments are never updated
// after creation: they are deleted individually by an admin, or in bulk
// when the owning employee is deleted.
type Payment struct {
	ID         string
	EmployeeID string // references Employee.ID
	Amount     decimal.Decimal
	Date       Date
	Note       string
	Type       PaymentType
	Operation  Operation
	Attendance *Attendance
}

// =============================================================================
// CURRENCY FORMATTING
// =============================================================================

// FormatCurrency renders an amount as "$1,234.56" with two fraction digits
// and thousands separators. Negative amounts render as "-$300.00".
func FormatCurrency(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(2)

	intPart := fixed[:len(fixed)-3]
	fracPart := fixed[len(fixed)-3:]

	var b strings.Builder
	if amount.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, ch := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(ch)
	}
	b.WriteString(fracPart)
	return b.String()
}
