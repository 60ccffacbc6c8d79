package payroll

// =============================================================================
// ACCESS POLICY - Role-based visibility
// =============================================================================

// Caller is the authenticated identity supplied with every request.
type Caller struct {
	ID   string
	Role Role
}

func (c Caller) IsAdmin() bool { return c.Role == RoleAdmin }

// VisibleEmployees returns the employee records a caller may see.
//
// An admin sees every non-admin employee: admin accounts are excluded from
// employee-facing listings entirely, not just the caller's own. This matches
// the intended single-admin-per-deployment usage; with multiple admin
// accounts, admins would not see each other.
//
// A non-admin sees only their own record.
func VisibleEmployees(all []Employee, caller Caller) []Employee {
	visible := make([]Employee, 0, len(all))
	for _, e := range all {
		if caller.IsAdmin() {
			if !e.IsAdmin() {
				visible = append(visible, e)
			}
		} else if e.ID == caller.ID {
			visible = append(visible, e)
		}
	}
	return visible
}

// VisiblePayments returns the payments a caller may see: everything for an
// admin, only their own otherwise.
func VisiblePayments(all []Payment, caller Caller) []Payment {
	if caller.IsAdmin() {
		return all
	}
	visible := make([]Payment, 0, len(all))
	for _, p := range all {
		if p.EmployeeID == caller.ID {
			visible = append(visible, p)
		}
	}
	return visible
}
