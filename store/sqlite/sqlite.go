/*
Package sqlite provides a SQLite-backed implementation of payroll.Store.

PURPOSE:
  Persists employees and payments using SQLite. In production, the same
  patterns apply to PostgreSQL - only minor SQL dialect differences.

KEY TABLES:
  employees:  Accounts with login code, salary, start date, role
  payments:   Salary/advance ledger entries with optional attendance

CASCADE:
  Deleting an employee deletes their payments in the same transaction,
  on top of the ON DELETE CASCADE foreign key. No payment survives its
  owning employee.

MONEY:
  Amounts are stored as decimal strings, never floats, so nothing is
  lost between write and read.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) and foreign keys on.

USAGE:
  store, err := sqlite.New("./data/payroll.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - payroll/store.go: Interface definitions
  - store/memory: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/payroll"
)

// Store implements payroll.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		code TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		name TEXT NOT NULL,
		monthly_salary TEXT NOT NULL,
		start_date TEXT NOT NULL,
		role TEXT NOT NULL,
		created_at TEXT NOT NULL DEFAULT (datetime('now'))
	);

	CREATE TABLE IF NOT EXISTS payments (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		amount TEXT NOT NULL,
		date TEXT NOT NULL,
		note TEXT NOT NULL DEFAULT '',
		type TEXT NOT NULL,
		operation TEXT NOT NULL,
		att_total_days INTEGER,
		att_present_days INTEGER,
		att_absent_days INTEGER,
		created_at TEXT NOT NULL DEFAULT (datetime('now'))
	);

	CREATE INDEX IF NOT EXISTS idx_payments_employee
		ON payments(employee_id);
	CREATE INDEX IF NOT EXISTS idx_payments_date
		ON payments(date);
	CREATE INDEX IF NOT EXISTS idx_payments_type
		ON payments(type);

	-- Composite index for period-based reconciliation queries (hot path)
	CREATE INDEX IF NOT EXISTS idx_payments_employee_type_date
		ON payments(employee_id, type, date);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// EMPLOYEE STORE (payroll.EmployeeStore interface)
// =============================================================================

func (s *Store) CreateEmployee(ctx context.Context, emp payroll.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO employees (id, code, password_hash, name, monthly_salary, start_date, role)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		emp.ID,
		emp.Code,
		emp.PasswordHash,
		emp.Name,
		emp.MonthlySalary.String(),
		emp.StartDate.String(),
		string(emp.Role),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return payroll.ErrDuplicateCode
		}
		return fmt.Errorf("failed to create employee: %w", err)
	}
	return nil
}

func (s *Store) GetEmployee(ctx context.Context, id string) (payroll.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, employeeSelect+" WHERE id = ?", id)
	return scanEmployee(row)
}

func (s *Store) GetEmployeeByCode(ctx context.Context, code string) (payroll.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, employeeSelect+" WHERE code = ?", code)
	return scanEmployee(row)
}

func (s *Store) ListEmployees(ctx context.Context) ([]payroll.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// created_at has one-second granularity; rowid is true insertion order.
	rows, err := s.db.QueryContext(ctx, employeeSelect+" ORDER BY rowid ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var result []payroll.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, emp)
	}
	return result, rows.Err()
}

func (s *Store) UpdateEmployee(ctx context.Context, emp payroll.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		UPDATE employees
		SET code = ?, password_hash = ?, name = ?, monthly_salary = ?, start_date = ?, role = ?
		WHERE id = ?
	`
	res, err := s.db.ExecContext(ctx, query,
		emp.Code,
		emp.PasswordHash,
		emp.Name,
		emp.MonthlySalary.String(),
		emp.StartDate.String(),
		string(emp.Role),
		emp.ID,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return payroll.ErrDuplicateCode
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return payroll.ErrEmployeeNotFound
	}
	return nil
}

// DeleteEmployee removes the employee and all of their payments atomically.
func (s *Store) DeleteEmployee(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM payments WHERE employee_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete payments: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return payroll.ErrEmployeeNotFound
	}

	return tx.Commit()
}

const employeeSelect = `
	SELECT id, code, password_hash, name, monthly_salary, start_date, role
	FROM employees
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (payroll.Employee, error) {
	var emp payroll.Employee
	var salary, startDate, role string

	err := row.Scan(&emp.ID, &emp.Code, &emp.PasswordHash, &emp.Name, &salary, &startDate, &role)
	if err == sql.ErrNoRows {
		return payroll.Employee{}, payroll.ErrEmployeeNotFound
	}
	if err != nil {
		return payroll.Employee{}, fmt.Errorf("failed to scan employee: %w", err)
	}

	emp.MonthlySalary, err = decimal.NewFromString(salary)
	if err != nil {
		return payroll.Employee{}, fmt.Errorf("corrupt monthly_salary %q: %w", salary, err)
	}
	emp.StartDate, err = payroll.ParseDate(startDate)
	if err != nil {
		return payroll.Employee{}, fmt.Errorf("corrupt start_date %q: %w", startDate, err)
	}
	emp.Role = payroll.Role(role)
	return emp, nil
}

// =============================================================================
// PAYMENT STORE (payroll.PaymentStore interface)
// =============================================================================

func (s *Store) AppendPayment(ctx context.Context, p payroll.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var attTotal, attPresent, attAbsent sql.NullInt64
	if p.Attendance != nil {
		attTotal = sql.NullInt64{Int64: int64(p.Attendance.TotalDays), Valid: true}
		attPresent = sql.NullInt64{Int64: int64(p.Attendance.PresentDays), Valid: true}
		attAbsent = sql.NullInt64{Int64: int64(p.Attendance.AbsentDays), Valid: true}
	}

	query := `
		INSERT INTO payments
		(id, employee_id, amount, date, note, type, operation,
		 att_total_days, att_present_days, att_absent_days)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		p.ID,
		p.EmployeeID,
		p.Amount.String(),
		p.Date.String(),
		p.Note,
		string(p.Type),
		string(p.Operation),
		attTotal,
		attPresent,
		attAbsent,
	)
	if err != nil {
		return fmt.Errorf("failed to append payment: %w", err)
	}
	return nil
}

func (s *Store) DeletePayment(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM payments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return payroll.ErrPaymentNotFound
	}
	return nil
}

func (s *Store) ListPayments(ctx context.Context, f payroll.PaymentFilter) ([]payroll.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, employee_id, amount, date, note, type, operation,
		       att_total_days, att_present_days, att_absent_days
		FROM payments
	`
	var conds []string
	var args []any
	if f.EmployeeID != "" {
		conds = append(conds, "employee_id = ?")
		args = append(args, f.EmployeeID)
	}
	if f.Type != "" {
		conds = append(conds, "type = ?")
		args = append(args, string(f.Type))
	}
	if f.From != nil {
		conds = append(conds, "date >= ?")
		args = append(args, f.From.String())
	}
	if f.To != nil {
		conds = append(conds, "date <= ?")
		args = append(args, f.To.String())
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY rowid ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var result []payroll.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (s *Store) DeleteAllForEmployee(ctx context.Context, employeeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM payments WHERE employee_id = ?`, employeeID)
	if err != nil {
		return fmt.Errorf("failed to delete payments: %w", err)
	}
	return nil
}

func scanPayment(row rowScanner) (payroll.Payment, error) {
	var p payroll.Payment
	var amount, date, ptype, op string
	var attTotal, attPresent, attAbsent sql.NullInt64

	err := row.Scan(&p.ID, &p.EmployeeID, &amount, &date, &p.Note, &ptype, &op,
		&attTotal, &attPresent, &attAbsent)
	if err == sql.ErrNoRows {
		return payroll.Payment{}, payroll.ErrPaymentNotFound
	}
	if err != nil {
		return payroll.Payment{}, fmt.Errorf("failed to scan payment: %w", err)
	}

	p.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return payroll.Payment{}, fmt.Errorf("corrupt amount %q: %w", amount, err)
	}
	p.Date, err = payroll.ParseDate(date)
	if err != nil {
		return payroll.Payment{}, fmt.Errorf("corrupt date %q: %w", date, err)
	}
	p.Type = payroll.PaymentType(ptype)
	p.Operation = payroll.Operation(op)

	if attTotal.Valid {
		p.Attendance = &payroll.Attendance{
			TotalDays:   int(attTotal.Int64),
			PresentDays: int(attPresent.Int64),
			AbsentDays:  int(attAbsent.Int64),
		}
	}
	return p, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
