package user

type Role string

const (
	RoleAdmin    Role = "admin"    // Payroll administrator - full access
	RoleEmployee Role = "employee" // Hourly/shift worker
)

var RoleValues = []string{
	string(RoleAdmin),
	string(RoleEmployee),
}

// Identity is the authenticated caller as read from the access token claims.
type Identity struct {
	UserID     string
	EmployeeID string
	Role       Role
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
