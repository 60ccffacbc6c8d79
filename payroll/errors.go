/*
errors.go - Centralized error types for the payroll engine

PURPOSE:
  All domain error types in one place. Every failure is local: no operation
  partially mutates the ledger and then fails. There are no retries inside
  the core; errors propagate to the boundary layer for display or logging.

ERROR CATEGORIES:
  1. Validation errors - missing or malformed fields on a payment
  2. Not-found errors  - referenced employee or payment does not exist
  3. Date errors       - unparseable dates, reversed periods
  4. Access errors     - non-admin attempting an admin-only mutation

USAGE:
  Callers match with errors.Is:

    if errors.Is(err, payroll.ErrPaymentNotFound) { ... }

  or unwrap the structured form:

    var verr *payroll.ValidationError
    if errors.As(err, &verr) { fields := verr.Fields }
*/
package payroll

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrValidation is the sentinel wrapped by every ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidDate is returned when a date input fails to parse.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidPeriod is returned when a period ends before it starts.
	ErrInvalidPeriod = errors.New("invalid period: end before start")

	// ErrEmployeeNotFound is returned when a referenced employee doesn't exist.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrPaymentNotFound is returned when a referenced payment doesn't exist.
	// Deleting a payment twice is an error the second time, not a no-op.
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrAccessDenied is returned before any side effect when a caller lacks
	// the role required for an operation.
	ErrAccessDenied = errors.New("access denied")

	// ErrDuplicateCode is returned when an employee code is already taken.
	ErrDuplicateCode = errors.New("employee code already exists")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// ValidationError lists every missing or invalid field of a rejected record.
type ValidationError struct {
	Fields map[string]string // field name -> problem
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s: %s", name, e.Fields[name])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEmployeeNotFound) || errors.Is(err, ErrPaymentNotFound)
}

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidPeriod) ||
		errors.Is(err, ErrDuplicateCode)
}
