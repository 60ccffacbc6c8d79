// Package auth provides credential checking and session tokens for the
// payroll API. Passwords are bcrypt-hashed; sessions are stateless JWTs
// carrying the caller's id, code and role.
package auth

import (
	"context"
	"errors"

	"github.com/warp/payroll-engine/payroll"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid employee code or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
)

// HashPassword bcrypt-hashes a password for storage, rejecting weak ones.
func HashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Authenticator verifies employee credentials against the store.
type Authenticator struct {
	employees payroll.EmployeeStore
}

func NewAuthenticator(employees payroll.EmployeeStore) *Authenticator {
	return &Authenticator{employees: employees}
}

// Authenticate looks up the employee by login code and compares the
// password hash. Lookup failure and hash mismatch are indistinguishable
// to the caller.
func (a *Authenticator) Authenticate(ctx context.Context, code, password string) (payroll.Employee, error) {
	emp, err := a.employees.GetEmployeeByCode(ctx, code)
	if err != nil {
		return payroll.Employee{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(password)); err != nil {
		return payroll.Employee{}, ErrInvalidCredentials
	}

	return emp, nil
}
