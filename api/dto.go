/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers and the domain layer, not in DTOs.
  DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// AUTH
// =============================================================================

type LoginRequest struct {
	Code     string `json:"employee_id"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  EmployeeDTO `json:"user"`
}

// =============================================================================
// EMPLOYEES
// =============================================================================

// EmployeeDTO represents an employee in API responses. The password hash
// never leaves the server.
type EmployeeDTO struct {
	ID            string `json:"id"`
	Code          string `json:"employee_id"`
	Name          string `json:"name"`
	MonthlySalary string `json:"monthly_salary"`
	StartDate     string `json:"start_date"`
	Role          string `json:"role"`
}

type CreateEmployeeRequest struct {
	Code          string `json:"employee_id"`
	Password      string `json:"password"`
	Name          string `json:"name"`
	MonthlySalary string `json:"monthly_salary"`
	StartDate     string `json:"start_date"`
	Role          string `json:"role"`
}

// UpdateEmployeeRequest carries optional fields; nil means unchanged.
type UpdateEmployeeRequest struct {
	Code          *string `json:"employee_id"`
	Password      *string `json:"password"`
	Name          *string `json:"name"`
	MonthlySalary *string `json:"monthly_salary"`
	StartDate     *string `json:"start_date"`
	Role          *string `json:"role"`
}

// =============================================================================
// PAYMENTS
// =============================================================================

type AttendanceDTO struct {
	TotalDays   int `json:"total_days"`
	PresentDays int `json:"present_days"`
	AbsentDays  int `json:"absent_days"`
}

type PaymentDTO struct {
	ID         string         `json:"id"`
	EmployeeID string         `json:"employee_id"`
	Amount     string         `json:"amount"`
	Date       string         `json:"date"`
	Note       string         `json:"note,omitempty"`
	Type       string         `json:"type"`
	Operation  string         `json:"operation"`
	Attendance *AttendanceDTO `json:"attendance,omitempty"`
}

type CreatePaymentRequest struct {
	EmployeeID string         `json:"employee_id"`
	Amount     string         `json:"amount"`
	Date       string         `json:"date"`
	Note       string         `json:"note"`
	Type       string         `json:"type"`
	Operation  string         `json:"operation"`
	Attendance *AttendanceDTO `json:"attendance,omitempty"`
}

type SalaryPaymentRequest struct {
	EmployeeID string         `json:"employee_id"`
	Amount     string         `json:"amount"`
	Date       string         `json:"date"`
	Note       string         `json:"note"`
	Attendance *AttendanceDTO `json:"attendance,omitempty"`
}

type AdvancePaymentRequest struct {
	EmployeeID string `json:"employee_id"`
	Amount     string `json:"amount"`
	Date       string `json:"date"`
	Note       string `json:"note"`
	Operation  string `json:"operation"`
}

// =============================================================================
// SALARY CALCULATION
// =============================================================================

type CalculateRequest struct {
	EmployeeID  string `json:"employee_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	PresentDays int    `json:"present_days"`
}

type CalculationDTO struct {
	EmployeeID      string `json:"employee_id"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	TotalDays       int    `json:"total_days"`
	PresentDays     int    `json:"present_days"`
	AbsentDays      int    `json:"absent_days"`
	BaseSalary      string `json:"base_salary"`
	AbsentDeduction string `json:"absent_deduction"`
	PaidSalary      string `json:"paid_salary"`
	RemainingSalary string `json:"remaining_salary"`
	Note            string `json:"note"`
}

// =============================================================================
// REPORTS
// =============================================================================

type ReportTotalsDTO struct {
	SalaryPaid       string `json:"total_salary_paid"`
	AdvanceBalance   string `json:"total_advance"`
	AdvanceDeduction string `json:"total_advance_deduction"`
}

type ReportDTO struct {
	Totals    ReportTotalsDTO `json:"totals"`
	LineItems []PaymentDTO    `json:"line_items"`
}

// =============================================================================
// ERRORS
// =============================================================================

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toEmployeeDTO(e payroll.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:            e.ID,
		Code:          e.Code,
		Name:          e.Name,
		MonthlySalary: e.MonthlySalary.String(),
		StartDate:     e.StartDate.String(),
		Role:          string(e.Role),
	}
}

func toPaymentDTO(p payroll.Payment) PaymentDTO {
	dto := PaymentDTO{
		ID:         p.ID,
		EmployeeID: p.EmployeeID,
		Amount:     p.Amount.String(),
		Date:       p.Date.String(),
		Note:       p.Note,
		Type:       string(p.Type),
		Operation:  string(p.Operation),
	}
	if p.Attendance != nil {
		dto.Attendance = &AttendanceDTO{
			TotalDays:   p.Attendance.TotalDays,
			PresentDays: p.Attendance.PresentDays,
			AbsentDays:  p.Attendance.AbsentDays,
		}
	}
	return dto
}

func toPaymentDTOs(payments []payroll.Payment) []PaymentDTO {
	dtos := make([]PaymentDTO, len(payments))
	for i, p := range payments {
		dtos[i] = toPaymentDTO(p)
	}
	return dtos
}

func fromAttendanceDTO(dto *AttendanceDTO) *payroll.Attendance {
	if dto == nil {
		return nil
	}
	return &payroll.Attendance{
		TotalDays:   dto.TotalDays,
		PresentDays: dto.PresentDays,
		AbsentDays:  dto.AbsentDays,
	}
}

func toCalculationDTO(c payroll.Calculation) CalculationDTO {
	return CalculationDTO{
		EmployeeID:      c.EmployeeID,
		StartDate:       c.Period.Start.String(),
		EndDate:         c.Period.End.String(),
		TotalDays:       c.TotalDays,
		PresentDays:     c.PresentDays,
		AbsentDays:      c.AbsentDays,
		BaseSalary:      c.BaseSalary.String(),
		AbsentDeduction: c.AbsentDeduction.String(),
		PaidSalary:      c.PaidSalary.String(),
		RemainingSalary: c.RemainingSalary.String(),
		Note:            c.BreakdownNote(),
	}
}
