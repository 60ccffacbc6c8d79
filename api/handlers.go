/*
handlers.go - HTTP API handlers for the payroll engine

PURPOSE:
  Exposes the payroll engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Auth:
    POST   /api/auth/login             Exchange credentials for a token
    GET    /api/auth/user              Echo the authenticated identity

  Employees:
    GET    /api/employees              List visible employees
    POST   /api/employees              Create employee (admin)
    PUT    /api/employees/{id}         Update employee (admin)
    DELETE /api/employees/{id}         Delete employee + payments (admin)

  Payments:
    GET    /api/payments               List visible payments
    POST   /api/payments               Record a payment (admin)
    POST   /api/payments/salary        Record a salary payout (admin)
    POST   /api/payments/advance       Record an advance (admin)
    DELETE /api/payments/{id}          Delete a payment (admin)

  Salary:
    POST   /api/salary/calculate       Compute entitlement for a period (admin)

  Reports:
    GET    /api/reports                Totals + line items for a filter

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid dates, reversed periods
  - 401: Missing/invalid credentials or token
  - 403: Non-admin attempting an admin-only mutation
  - 404: Employee or payment not found
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/auth"
	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store  payroll.Store
	Ledger *payroll.Ledger
	Auth   *auth.Authenticator
	Tokens *auth.JWTManager
}

// NewHandler creates a new handler over the given store.
func NewHandler(store payroll.Store, tokens *auth.JWTManager) *Handler {
	return &Handler{
		Store:  store,
		Ledger: payroll.NewLedger(store, store),
		Auth:   auth.NewAuthenticator(store),
		Tokens: tokens,
	}
}

// =============================================================================
// AUTH HANDLERS
// =============================================================================

// Login exchanges an employee code and password for a session token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	emp, err := h.Auth.Authenticate(r.Context(), req.Code, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid employee ID or password", nil)
		return
	}

	token, err := h.Tokens.Generate(emp)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to issue token", err)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{Token: token, User: toEmployeeDTO(emp)})
}

// CurrentUser returns the record behind the presented token.
func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	emp, err := h.Store.GetEmployee(r.Context(), caller.ID)
	if err != nil {
		writeDomainError(w, "Failed to load user", err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(emp))
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns the employees visible to the caller: all non-admin
// records for an admin, only the caller's own record otherwise.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	all, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	visible := payroll.VisibleEmployees(all, caller)
	dtos := make([]EmployeeDTO, len(visible))
	for i, e := range visible {
		dtos[i] = toEmployeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateEmployee creates a new employee account. Admin only (routing).
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	emp, err := h.employeeFromRequest(req)
	if err != nil {
		writeDomainError(w, "Invalid employee", err)
		return
	}

	if err := h.Store.CreateEmployee(r.Context(), emp); err != nil {
		writeDomainError(w, "Failed to create employee", err)
		return
	}

	slog.Info("employee created", "id", emp.ID, "code", emp.Code)
	writeJSON(w, http.StatusCreated, toEmployeeDTO(emp))
}

func (h *Handler) employeeFromRequest(req CreateEmployeeRequest) (payroll.Employee, error) {
	fields := make(map[string]string)

	if req.Code == "" {
		fields["employee_id"] = "required"
	}
	if req.Name == "" {
		fields["name"] = "required"
	}

	salary := decimal.Zero
	if req.MonthlySalary != "" {
		var err error
		salary, err = decimal.NewFromString(req.MonthlySalary)
		if err != nil || salary.IsNegative() {
			fields["monthly_salary"] = "must be a non-negative decimal"
		}
	}

	var startDate payroll.Date
	if req.StartDate == "" {
		fields["start_date"] = "required"
	} else {
		var err error
		startDate, err = payroll.ParseDate(req.StartDate)
		if err != nil {
			fields["start_date"] = "must be a YYYY-MM-DD date"
		}
	}

	role := payroll.Role(req.Role)
	if req.Role == "" {
		role = payroll.RoleEmployee
	} else if !role.Valid() {
		fields["role"] = "must be admin or employee"
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		fields["password"] = err.Error()
	}

	if len(fields) > 0 {
		return payroll.Employee{}, &payroll.ValidationError{Fields: fields}
	}

	return payroll.Employee{
		ID:            uuid.NewString(),
		Code:          req.Code,
		PasswordHash:  hash,
		Name:          req.Name,
		MonthlySalary: salary,
		StartDate:     startDate,
		Role:          role,
	}, nil
}

// UpdateEmployee applies a partial update. Admin only (routing).
func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	emp, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		writeDomainError(w, "Failed to load employee", err)
		return
	}

	if req.Code != nil {
		emp.Code = *req.Code
	}
	if req.Name != nil {
		emp.Name = *req.Name
	}
	if req.MonthlySalary != nil {
		salary, err := decimal.NewFromString(*req.MonthlySalary)
		if err != nil || salary.IsNegative() {
			writeError(w, http.StatusBadRequest, "monthly_salary must be a non-negative decimal", nil)
			return
		}
		emp.MonthlySalary = salary
	}
	if req.StartDate != nil {
		startDate, err := payroll.ParseDate(*req.StartDate)
		if err != nil {
			writeDomainError(w, "Invalid start_date", err)
			return
		}
		emp.StartDate = startDate
	}
	if req.Role != nil {
		role := payroll.Role(*req.Role)
		if !role.Valid() {
			writeError(w, http.StatusBadRequest, "role must be admin or employee", nil)
			return
		}
		emp.Role = role
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid password", err)
			return
		}
		emp.PasswordHash = hash
	}

	if err := h.Store.UpdateEmployee(r.Context(), emp); err != nil {
		writeDomainError(w, "Failed to update employee", err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(emp))
}

// DeleteEmployee removes an employee and, by cascade, every payment
// referencing them. Admin accounts cannot be deleted.
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	emp, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		writeDomainError(w, "Failed to load employee", err)
		return
	}
	if emp.IsAdmin() {
		writeDomainError(w, "Cannot delete an admin.", payroll.ErrAccessDenied)
		return
	}

	if err := h.Store.DeleteEmployee(r.Context(), id); err != nil {
		writeDomainError(w, "Failed to delete employee", err)
		return
	}

	slog.Info("employee deleted", "id", id)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Employee deleted."})
}

// =============================================================================
// PAYMENT HANDLERS
// =============================================================================

// ListPayments returns payments matching the query, restricted to the
// caller's own records for non-admins.
func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	filter, err := paymentFilterFromQuery(r)
	if err != nil {
		writeDomainError(w, "Invalid filter", err)
		return
	}
	if !caller.IsAdmin() {
		// Identity restriction is unconditional; the query parameter
		// cannot widen a non-admin's view.
		filter.EmployeeID = caller.ID
	}

	payments, err := h.Ledger.Payments(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list payments", err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentDTOs(payments))
}

func paymentFilterFromQuery(r *http.Request) (payroll.PaymentFilter, error) {
	q := r.URL.Query()
	f := payroll.PaymentFilter{
		EmployeeID: q.Get("employee_id"),
	}
	if t := q.Get("type"); t != "" && t != "all" {
		f.Type = payroll.PaymentType(t)
	}
	if from := q.Get("from"); from != "" {
		d, err := payroll.ParseDate(from)
		if err != nil {
			return payroll.PaymentFilter{}, err
		}
		f.From = &d
	}
	if to := q.Get("to"); to != "" {
		d, err := payroll.ParseDate(to)
		if err != nil {
			return payroll.PaymentFilter{}, err
		}
		f.To = &d
	}
	return f, nil
}

// CreatePayment records an arbitrary payment. Admin only (routing).
func (h *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	amount, date, err := parseAmountAndDate(req.Amount, req.Date)
	if err != nil {
		writeDomainError(w, "Invalid payment", err)
		return
	}

	payment, err := h.Ledger.AddPayment(r.Context(), payroll.Payment{
		EmployeeID: req.EmployeeID,
		Amount:     amount,
		Date:       date,
		Note:       req.Note,
		Type:       payroll.PaymentType(req.Type),
		Operation:  payroll.Operation(req.Operation),
		Attendance: fromAttendanceDTO(req.Attendance),
	})
	if err != nil {
		writeDomainError(w, "Failed to record payment", err)
		return
	}
	writeJSON(w, http.StatusCreated, toPaymentDTO(payment))
}

// PaySalary records a salary payout (always operation=plus).
func (h *Handler) PaySalary(w http.ResponseWriter, r *http.Request) {
	var req SalaryPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	amount, date, err := parseAmountAndDate(req.Amount, req.Date)
	if err != nil {
		writeDomainError(w, "Invalid payment", err)
		return
	}

	payment, err := h.Ledger.RecordSalaryPayment(r.Context(), req.EmployeeID, date, amount, req.Note, fromAttendanceDTO(req.Attendance))
	if err != nil {
		writeDomainError(w, "Failed to record salary payment", err)
		return
	}

	slog.Info("salary paid", "employee_id", req.EmployeeID, "amount", amount.String())
	writeJSON(w, http.StatusCreated, toPaymentDTO(payment))
}

// PayAdvance records an advance with the given operation.
func (h *Handler) PayAdvance(w http.ResponseWriter, r *http.Request) {
	var req AdvancePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	amount, date, err := parseAmountAndDate(req.Amount, req.Date)
	if err != nil {
		writeDomainError(w, "Invalid payment", err)
		return
	}

	payment, err := h.Ledger.RecordAdvancePayment(r.Context(), req.EmployeeID, date, amount, req.Note, payroll.Operation(req.Operation))
	if err != nil {
		writeDomainError(w, "Failed to record advance payment", err)
		return
	}

	slog.Info("advance recorded", "employee_id", req.EmployeeID, "amount", amount.String(), "operation", req.Operation)
	writeJSON(w, http.StatusCreated, toPaymentDTO(payment))
}

// DeletePayment removes a single payment. Admin only (routing).
func (h *Handler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Ledger.DeletePayment(r.Context(), id); err != nil {
		writeDomainError(w, "Failed to delete payment", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Payment deleted."})
}

// =============================================================================
// SALARY CALCULATION
// =============================================================================

// CalculateSalary computes the entitlement and remaining balance for an
// employee over a period. Pure read: recording the payout is a separate
// explicit call to PaySalary.
func (h *Handler) CalculateSalary(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	emp, err := h.Store.GetEmployee(r.Context(), req.EmployeeID)
	if err != nil {
		writeDomainError(w, "Failed to load employee", err)
		return
	}

	period, err := payroll.ParsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		writeDomainError(w, "Invalid period", err)
		return
	}
	if err := period.Validate(); err != nil {
		writeDomainError(w, "Invalid period", err)
		return
	}

	payments, err := h.Ledger.Payments(r.Context(), payroll.PaymentFilter{
		EmployeeID: emp.ID,
		Type:       payroll.TypeSalary,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load payments", err)
		return
	}

	calc := payroll.Calculate(emp, period, req.PresentDays, payments)
	writeJSON(w, http.StatusOK, toCalculationDTO(calc))
}

// =============================================================================
// REPORTS
// =============================================================================

// GetReport builds totals and line items for the query filter. Non-admin
// callers always get their own payments, whatever the employee selector.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	filter, err := paymentFilterFromQuery(r)
	if err != nil {
		writeDomainError(w, "Invalid filter", err)
		return
	}

	// The aggregator re-applies the caller restriction; fetch everything
	// and let BuildReport narrow it.
	payments, err := h.Ledger.Payments(r.Context(), payroll.PaymentFilter{})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load payments", err)
		return
	}

	report := payroll.BuildReport(payments, payroll.ReportFilter{
		EmployeeID: filter.EmployeeID,
		Type:       filter.Type,
		From:       filter.From,
		To:         filter.To,
	}, caller)

	writeJSON(w, http.StatusOK, ReportDTO{
		Totals: ReportTotalsDTO{
			SalaryPaid:       report.Totals.SalaryPaid.String(),
			AdvanceBalance:   report.Totals.AdvanceBalance.String(),
			AdvanceDeduction: report.Totals.AdvanceDeduction.String(),
		},
		LineItems: toPaymentDTOs(report.LineItems),
	})
}

// =============================================================================
// HELPERS
// =============================================================================

func parseAmountAndDate(amountStr, dateStr string) (decimal.Decimal, payroll.Date, error) {
	fields := make(map[string]string)

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		fields["amount"] = "must be a decimal"
	}

	var date payroll.Date
	if dateStr == "" {
		fields["date"] = "required"
	} else {
		date, err = payroll.ParseDate(dateStr)
		if err != nil {
			fields["date"] = "must be a YYYY-MM-DD date"
		}
	}

	if len(fields) > 0 {
		return decimal.Decimal{}, payroll.Date{}, &payroll.ValidationError{Fields: fields}
	}
	return amount, date, nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	if status >= http.StatusInternalServerError {
		slog.Error(message, "error", err)
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps domain errors to HTTP status codes.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	switch {
	case payroll.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case payroll.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	case errors.Is(err, payroll.ErrAccessDenied):
		writeError(w, http.StatusForbidden, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}
