package auth

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/store/memory"
	"golang.org/x/crypto/bcrypt"
)

func seedEmployee(t *testing.T, store *memory.Store, code, password string) payroll.Employee {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	emp := payroll.Employee{
		ID:            "emp-" + code,
		Code:          code,
		PasswordHash:  string(hash),
		Name:          "Employee " + code,
		MonthlySalary: decimal.RequireFromString("3000"),
		Role:          payroll.RoleEmployee,
	}
	require.NoError(t, store.CreateEmployee(context.Background(), emp))
	return emp
}

// =============================================================================
// PASSWORDS
// =============================================================================

func TestHashPassword_RejectsWeak(t *testing.T) {
	_, err := HashPassword("short")
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestHashPassword_HashVerifies(t *testing.T) {
	hash, err := HashPassword("long-enough-1")
	require.NoError(t, err)
	assert.NotEqual(t, "long-enough-1", hash, "never stored in the clear")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("long-enough-1")))
}

func TestAuthenticate(t *testing.T) {
	store := memory.New()
	emp := seedEmployee(t, store, "EMP001", "correct-horse-1")
	a := NewAuthenticator(store)
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		got, err := a.Authenticate(ctx, "EMP001", "correct-horse-1")
		require.NoError(t, err)
		assert.Equal(t, emp.ID, got.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := a.Authenticate(ctx, "EMP001", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown code looks identical to wrong password", func(t *testing.T) {
		_, err := a.Authenticate(ctx, "nobody", "whatever")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

// =============================================================================
// TOKENS
// =============================================================================

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	emp := payroll.Employee{ID: "emp-1", Code: "EMP001", Role: payroll.RoleAdmin}

	token, err := m.Generate(emp)
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "emp-1", claims.UserID)
	assert.Equal(t, "EMP001", claims.Code)
	assert.Equal(t, "admin", claims.Role)

	caller := claims.Caller()
	assert.Equal(t, "emp-1", caller.ID)
	assert.True(t, caller.IsAdmin())
}

func TestJWTValidate_WrongSecret(t *testing.T) {
	issuer := NewJWTManager("secret-a", time.Hour)
	verifier := NewJWTManager("secret-b", time.Hour)

	token, err := issuer.Generate(payroll.Employee{ID: "emp-1", Code: "EMP001", Role: payroll.RoleEmployee})
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTValidate_Expired(t *testing.T) {
	m := NewJWTManager("secret", -time.Minute)

	token, err := m.Generate(payroll.Employee{ID: "emp-1", Code: "EMP001", Role: payroll.RoleEmployee})
	require.NoError(t, err)

	_, err = m.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTValidate_Garbage(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	_, err := m.Validate("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
