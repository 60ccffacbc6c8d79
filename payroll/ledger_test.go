package payroll_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/store/memory"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestLedger(t *testing.T) (*payroll.Ledger, *memory.Store) {
	t.Helper()
	store := memory.New()
	return payroll.NewLedger(store, store), store
}

func mustCreateEmployee(t *testing.T, store *memory.Store, emp payroll.Employee) {
	t.Helper()
	require.NoError(t, store.CreateEmployee(context.Background(), emp))
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestAddPayment_ReportsEveryInvalidField(t *testing.T) {
	// GIVEN: a payment missing everything
	// THEN: one ValidationError naming each field, and no write happens

	ledger, store := newTestLedger(t)
	ctx := context.Background()

	_, err := ledger.AddPayment(ctx, payroll.Payment{})

	var verr *payroll.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ErrorIs(t, err, payroll.ErrValidation)
	for _, field := range []string{"employeeId", "amount", "date", "type", "operation"} {
		assert.Contains(t, verr.Fields, field)
	}

	payments, err := store.ListPayments(ctx, payroll.PaymentFilter{})
	require.NoError(t, err)
	assert.Empty(t, payments, "rejected payment must leave no partial state")
}

func TestAddPayment_NegativeAmount_Rejected(t *testing.T) {
	// The sign lives in Operation, never in Amount.
	ledger, store := newTestLedger(t)
	ctx := context.Background()
	mustCreateEmployee(t, store, testEmployee("emp-1", "3000"))

	p := advancePayment("emp-1", day(2025, time.March, 1), "100", payroll.OpMinus)
	p.Amount = dec("-100")

	_, err := ledger.AddPayment(ctx, p)
	var verr *payroll.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "amount")
}

func TestAddPayment_UnknownEmployee_NotFound(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	_, err := ledger.AddPayment(ctx, salaryPayment("ghost", day(2025, time.March, 1), "100"))
	assert.ErrorIs(t, err, payroll.ErrEmployeeNotFound)
}

func TestAddPayment_InconsistentAttendance_Rejected(t *testing.T) {
	ledger, store := newTestLedger(t)
	ctx := context.Background()
	mustCreateEmployee(t, store, testEmployee("emp-1", "3000"))

	p := salaryPayment("emp-1", day(2025, time.March, 1), "100")
	p.Attendance = &payroll.Attendance{TotalDays: 30, PresentDays: 20, AbsentDays: 5}

	_, err := ledger.AddPayment(ctx, p)
	var verr *payroll.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "attendance")
}

func TestAddPayment_AssignsFreshID(t *testing.T) {
	ledger, store := newTestLedger(t)
	ctx := context.Background()
	mustCreateEmployee(t, store, testEmployee("emp-1", "3000"))

	in := salaryPayment("emp-1", day(2025, time.March, 1), "100")
	in.ID = "caller-chosen"

	out, err := ledger.AddPayment(ctx, in)
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.NotEqual(t, "caller-chosen", out.ID)
}

// =============================================================================
// DELETION
// =============================================================================

func TestDeletePayment_SecondDeleteErrors(t *testing.T) {
	// Deleting twice is an error the second time, not a silent no-op.
	ledger, store := newTestLedger(t)
	ctx := context.Background()
	mustCreateEmployee(t, store, testEmployee("emp-1", "3000"))

	p, err := ledger.AddPayment(ctx, salaryPayment("emp-1", day(2025, time.March, 1), "100"))
	require.NoError(t, err)

	require.NoError(t, ledger.DeletePayment(ctx, p.ID))
	assert.ErrorIs(t, ledger.DeletePayment(ctx, p.ID), payroll.ErrPaymentNotFound)
}

func TestDeleteEmployee_CascadesToPayments(t *testing.T) {
	// GIVEN: an employee with two payments
	// WHEN: the employee is deleted
	// THEN: zero payments reference the employee afterward

	ledger, store := newTestLedger(t)
	ctx := context.Background()
	mustCreateEmployee(t, store, testEmployee("emp-1", "3000"))
	mustCreateEmployee(t, store, testEmployee("emp-2", "2000"))

	_, err := ledger.AddPayment(ctx, salaryPayment("emp-1", day(2025, time.March, 1), "100"))
	require.NoError(t, err)
	_, err = ledger.AddPayment(ctx, advancePayment("emp-1", day(2025, time.March, 5), "50", payroll.OpPlus))
	require.NoError(t, err)
	_, err = ledger.AddPayment(ctx, salaryPayment("emp-2", day(2025, time.March, 1), "999"))
	require.NoError(t, err)

	require.NoError(t, store.DeleteEmployee(ctx, "emp-1"))

	orphans, err := store.ListPayments(ctx, payroll.PaymentFilter{EmployeeID: "emp-1"})
	require.NoError(t, err)
	assert.Empty(t, orphans)

	// Unrelated payments survive.
	others, err := store.ListPayments(ctx, payroll.PaymentFilter{EmployeeID: "emp-2"})
	require.NoError(t, err)
	assert.Len(t, others, 1)
}

// =============================================================================
// RECORDING CONVENTIONS
// =============================================================================

func TestRecordSalaryPayment_AlwaysPlus(t *testing.T) {
	ledger, store := newTestLedger(t)
	ctx := context.Background()
	mustCreateEmployee(t, store, testEmployee("emp-1", "3000"))

	p, err := ledger.RecordSalaryPayment(ctx, "emp-1", day(2025, time.March, 31), dec("2700"), "March payout", nil)
	require.NoError(t, err)

	assert.Equal(t, payroll.TypeSalary, p.Type)
	assert.Equal(t, payroll.OpPlus, p.Operation)
}

func TestRecordAdvancePayment_EitherOperation(t *testing.T) {
	ledger, store := newTestLedger(t)
	ctx := context.Background()
	mustCreateEmployee(t, store, testEmployee("emp-1", "3000"))

	plus, err := ledger.RecordAdvancePayment(ctx, "emp-1", day(2025, time.March, 1), dec("500"), "advance", payroll.OpPlus)
	require.NoError(t, err)
	assert.Equal(t, payroll.TypeAdvance, plus.Type)
	assert.Equal(t, payroll.OpPlus, plus.Operation)

	minus, err := ledger.RecordAdvancePayment(ctx, "emp-1", day(2025, time.April, 1), dec("200"), "claw-back", payroll.OpMinus)
	require.NoError(t, err)
	assert.Equal(t, payroll.OpMinus, minus.Operation)
}

func TestRecordCalculatedSalary_RoundTripToZeroRemaining(t *testing.T) {
	// GIVEN: a calculation with a positive remaining balance
	// WHEN: the payout is recorded and the calculation re-run
	// THEN: the remaining balance is zero (idempotent by construction:
	// the ledger accumulates, nothing is cached)

	ledger, store := newTestLedger(t)
	ctx := context.Background()
	emp := testEmployee("emp-1", "3000")
	mustCreateEmployee(t, store, emp)

	period := payroll.Period{Start: day(2025, time.March, 1), End: day(2025, time.March, 30)}

	payments, err := ledger.Payments(ctx, payroll.PaymentFilter{EmployeeID: emp.ID, Type: payroll.TypeSalary})
	require.NoError(t, err)
	before := payroll.Calculate(emp, period, 27, payments)
	require.True(t, dec("2700").Equal(before.RemainingSalary))

	paid, err := ledger.RecordCalculatedSalary(ctx, before, day(2025, time.March, 30))
	require.NoError(t, err)
	assert.True(t, before.RemainingSalary.Equal(paid.Amount))
	require.NotNil(t, paid.Attendance)
	assert.Equal(t, 30, paid.Attendance.TotalDays)
	assert.Equal(t, 27, paid.Attendance.PresentDays)
	assert.Equal(t, 3, paid.Attendance.AbsentDays)
	assert.Contains(t, paid.Note, "Absent Deduction: $300.00")

	payments, err = ledger.Payments(ctx, payroll.PaymentFilter{EmployeeID: emp.ID, Type: payroll.TypeSalary})
	require.NoError(t, err)
	after := payroll.Calculate(emp, period, 27, payments)
	assert.True(t, after.RemainingSalary.IsZero(), "remaining after payout: %s", after.RemainingSalary)
}

// =============================================================================
// FILTERED LISTING
// =============================================================================

func TestListPayments_FilterComposition(t *testing.T) {
	ledger, store := newTestLedger(t)
	ctx := context.Background()
	mustCreateEmployee(t, store, testEmployee("emp-1", "3000"))
	mustCreateEmployee(t, store, testEmployee("emp-2", "2000"))

	seed := []payroll.Payment{
		salaryPayment("emp-1", day(2025, time.March, 10), "1000"),
		advancePayment("emp-1", day(2025, time.March, 20), "500", payroll.OpPlus),
		salaryPayment("emp-2", day(2025, time.March, 15), "800"),
		salaryPayment("emp-1", day(2025, time.April, 10), "1100"),
	}
	for _, p := range seed {
		_, err := ledger.AddPayment(ctx, p)
		require.NoError(t, err)
	}

	from := day(2025, time.March, 1)
	to := day(2025, time.March, 31)
	got, err := ledger.Payments(ctx, payroll.PaymentFilter{
		EmployeeID: "emp-1",
		Type:       payroll.TypeSalary,
		From:       &from,
		To:         &to,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, dec("1000").Equal(got[0].Amount))

	// Open-ended bounds mean no limit.
	got, err = ledger.Payments(ctx, payroll.PaymentFilter{EmployeeID: "emp-1"})
	require.NoError(t, err)
	assert.Len(t, got, 3)
}
