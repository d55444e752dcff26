package domain

// Principal is the verified identity and role attached to an authenticated
// request. Issued by the access gate and consumed by the services.
type Principal struct {
	EmployeeID string `json:"employeeID"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
}

// IsManager reports whether the principal may decide requests and read all of
// them.
func (p Principal) IsManager() bool {
	return p.Role == RoleManager
}
