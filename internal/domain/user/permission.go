package user

type Permission string

const (
	// Self Management
	PermissionViewOwnProfile Permission = "profile.view_own"

	// Time tracking
	PermissionTimeEntryViewOwn Permission = "time_entry.view_own"
	PermissionTimeEntryClock   Permission = "time_entry.clock"
	PermissionTimeEntryViewAll Permission = "time_entry.view_all"
	PermissionTimeEntryManage  Permission = "time_entry.manage"

	// Attendance overrides
	PermissionAttendanceManage Permission = "attendance.manage"

	// Shifts
	PermissionShiftView   Permission = "shift.view"
	PermissionShiftManage Permission = "shift.manage"

	// Employee Management
	PermissionEmployeeViewAll Permission = "employee.view_all"
	PermissionEmployeeManage  Permission = "employee.manage"

	// Payroll
	PermissionPayrollViewOwn Permission = "payroll.view_own"
	PermissionPayrollManage  Permission = "payroll.manage"

	// Leave
	PermissionLeaveViewOwn Permission = "leave.view_own"
	PermissionLeaveViewAll Permission = "leave.view_all"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionViewOwnProfile,
		PermissionTimeEntryViewOwn,
		PermissionTimeEntryClock,
		PermissionTimeEntryViewAll,
		PermissionTimeEntryManage,
		PermissionAttendanceManage,
		PermissionShiftView,
		PermissionShiftManage,
		PermissionEmployeeViewAll,
		PermissionEmployeeManage,
		PermissionPayrollViewOwn,
		PermissionPayrollManage,
		PermissionLeaveViewOwn,
		PermissionLeaveViewAll,
	},
	RoleEmployee: {
		PermissionViewOwnProfile,
		PermissionTimeEntryViewOwn,
		PermissionTimeEntryClock,
		PermissionShiftView,
		PermissionPayrollViewOwn,
		PermissionLeaveViewOwn,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
