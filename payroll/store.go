/*
store.go - Persistence interfaces for employees and payments

PURPOSE:
  Defines the interface between the domain logic and the database.
  Different implementations can use SQLite or in-memory storage.

CASCADE CONTRACT:
  DeleteEmployee must also delete every payment referencing the employee.
  This cascade is a hard invariant, not optional cleanup: no payment may
  survive its owning employee. DeleteAllForEmployee exists for that
  collaborator to invoke; nothing else bulk-deletes payments.

NO PAYMENT UPDATE:
  Payments are immutable after creation. The interface deliberately has no
  update operation for them.

IMPLEMENTATIONS:
  - store/sqlite: Production SQLite
  - store/memory: In-memory for testing and dev

SEE ALSO:
  - ledger.go: Validated writes on top of PaymentStore
*/
package payroll

import "context"

// =============================================================================
// EMPLOYEE STORE
// =============================================================================

type EmployeeStore interface {
	// CreateEmployee persists a new employee. Fails with ErrDuplicateCode
	// if the code is taken.
	CreateEmployee(ctx context.Context, emp Employee) error

	// GetEmployee returns the employee by opaque ID.
	GetEmployee(ctx context.Context, id string) (Employee, error)

	// GetEmployeeByCode returns the employee by login code.
	GetEmployeeByCode(ctx context.Context, code string) (Employee, error)

	ListEmployees(ctx context.Context) ([]Employee, error)

	UpdateEmployee(ctx context.Context, emp Employee) error

	// DeleteEmployee removes the employee AND all payments referencing it.
	DeleteEmployee(ctx context.Context, id string) error
}

// =============================================================================
// PAYMENT STORE
// =============================================================================

// PaymentFilter narrows a payment listing. Nil/empty fields mean "no
// restriction"; an absent bound means no lower/upper limit.
type PaymentFilter struct {
	EmployeeID string
	Type       PaymentType
	From       *Date
	To         *Date
}

// Matches reports whether a payment passes the filter. Date bounds are
// inclusive.
func (f PaymentFilter) Matches(p Payment) bool {
	if f.EmployeeID != "" && p.EmployeeID != f.EmployeeID {
		return false
	}
	if f.Type != "" && p.Type != f.Type {
		return false
	}
	if f.From != nil && p.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && p.Date.After(*f.To) {
		return false
	}
	return true
}

type PaymentStore interface {
	// AppendPayment persists a new payment record.
	AppendPayment(ctx context.Context, p Payment) error

	// DeletePayment removes the record. ErrPaymentNotFound if absent.
	DeletePayment(ctx context.Context, id string) error

	// ListPayments returns records matching the filter. Ordering is stable
	// for a given store state; chronological order is the caller's sort.
	ListPayments(ctx context.Context, f PaymentFilter) ([]Payment, error)

	// DeleteAllForEmployee removes every payment for the employee.
	// Invoked exclusively by the employee-deletion cascade.
	DeleteAllForEmployee(ctx context.Context, employeeID string) error
}

// Store bundles both stores: the full persistence surface of the engine.
type Store interface {
	EmployeeStore
	PaymentStore
}
