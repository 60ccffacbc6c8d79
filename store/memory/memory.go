// Package memory provides an in-memory Store implementation (for testing/dev).
package memory

import (
	"context"
	"sync"

	"github.com/warp/payroll-engine/payroll"
)

// Store implements payroll.Store with maps behind an RWMutex.
type Store struct {
	mu        sync.RWMutex
	employees map[string]payroll.Employee
	payments  []payroll.Payment
}

func New() *Store {
	return &Store{
		employees: make(map[string]payroll.Employee),
	}
}

// =============================================================================
// EMPLOYEE STORE
// =============================================================================

func (s *Store) CreateEmployee(_ context.Context, emp payroll.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.employees {
		if e.Code == emp.Code {
			return payroll.ErrDuplicateCode
		}
	}
	s.employees[emp.ID] = emp
	return nil
}

func (s *Store) GetEmployee(_ context.Context, id string) (payroll.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	emp, ok := s.employees[id]
	if !ok {
		return payroll.Employee{}, payroll.ErrEmployeeNotFound
	}
	return emp, nil
}

func (s *Store) GetEmployeeByCode(_ context.Context, code string) (payroll.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.employees {
		if e.Code == code {
			return e, nil
		}
	}
	return payroll.Employee{}, payroll.ErrEmployeeNotFound
}

func (s *Store) ListEmployees(_ context.Context) ([]payroll.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]payroll.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		result = append(result, e)
	}
	return result, nil
}

func (s *Store) UpdateEmployee(_ context.Context, emp payroll.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.employees[emp.ID]; !ok {
		return payroll.ErrEmployeeNotFound
	}
	for _, e := range s.employees {
		if e.Code == emp.Code && e.ID != emp.ID {
			return payroll.ErrDuplicateCode
		}
	}
	s.employees[emp.ID] = emp
	return nil
}

// DeleteEmployee removes the employee and cascades to their payments.
func (s *Store) DeleteEmployee(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.employees[id]; !ok {
		return payroll.ErrEmployeeNotFound
	}
	delete(s.employees, id)
	s.deletePaymentsLocked(id)
	return nil
}

// =============================================================================
// PAYMENT STORE
// =============================================================================

func (s *Store) AppendPayment(_ context.Context, p payroll.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.Attendance != nil {
		att := *p.Attendance
		p.Attendance = &att
	}
	s.payments = append(s.payments, p)
	return nil
}

func (s *Store) DeletePayment(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.payments {
		if p.ID == id {
			s.payments = append(s.payments[:i], s.payments[i+1:]...)
			return nil
		}
	}
	return payroll.ErrPaymentNotFound
}

func (s *Store) ListPayments(_ context.Context, f payroll.PaymentFilter) ([]payroll.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []payroll.Payment
	for _, p := range s.payments {
		if f.Matches(p) {
			result = append(result, p)
		}
	}
	return result, nil
}

func (s *Store) DeleteAllForEmployee(_ context.Context, employeeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deletePaymentsLocked(employeeID)
	return nil
}

func (s *Store) deletePaymentsLocked(employeeID string) {
	kept := s.payments[:0]
	for _, p := range s.payments {
		if p.EmployeeID != employeeID {
			kept = append(kept, p)
		}
	}
	s.payments = kept
}
