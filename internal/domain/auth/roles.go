package auth

// Role is the complete set of dashboard roles. Authorization is an
// in-memory capability table keyed by {role, action}, checked once per
// action at the page boundary.
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleManager  Role = "Manager"
	RoleEmployee Role = "Employee"
)

func ParseRole(value string) (Role, bool) {
	switch Role(value) {
	case RoleAdmin, RoleManager, RoleEmployee:
		return Role(value), true
	}
	return "", false
}

type Action string

const (
	ActionEmployeesRead   Action = "employees.read"
	ActionEmployeesWrite  Action = "employees.write"
	ActionEmployeesDelete Action = "employees.delete"
	ActionEmployeesImport Action = "employees.import"
	ActionTasksRead       Action = "tasks.read"
	ActionTasksAssign     Action = "tasks.assign"
	ActionTasksUpdate     Action = "tasks.update"
	ActionMoodLog         Action = "mood.log"
	ActionMoodReadAll     Action = "mood.read_all"
	ActionFeedbackWrite   Action = "feedback.write"
	ActionFeedbackReadAll Action = "feedback.read_all"
	ActionFeedbackDelete  Action = "feedback.delete"
	ActionAttendanceLog   Action = "attendance.log"
	ActionAttendanceRead  Action = "attendance.read_all"
	ActionAnalyticsRead   Action = "analytics.read"
	ActionReportsGenerate Action = "reports.generate"
	ActionUsersManage     Action = "users.manage"
)

var rolePermissions = map[Role]map[Action]bool{
	RoleAdmin: {
		ActionEmployeesRead:   true,
		ActionEmployeesWrite:  true,
		ActionEmployeesDelete: true,
		ActionEmployeesImport: true,
		ActionTasksRead:       true,
		ActionTasksAssign:     true,
		ActionTasksUpdate:     true,
		ActionMoodLog:         true,
		ActionMoodReadAll:     true,
		ActionFeedbackWrite:   true,
		ActionFeedbackReadAll: true,
		ActionFeedbackDelete:  true,
		ActionAttendanceLog:   true,
		ActionAttendanceRead:  true,
		ActionAnalyticsRead:   true,
		ActionReportsGenerate: true,
		ActionUsersManage:     true,
	},
	RoleManager: {
		ActionEmployeesRead:   true,
		ActionTasksRead:       true,
		ActionTasksAssign:     true,
		ActionTasksUpdate:     true,
		ActionMoodLog:         true,
		ActionMoodReadAll:     true,
		ActionFeedbackWrite:   true,
		ActionFeedbackReadAll: true,
		ActionAttendanceLog:   true,
		ActionAttendanceRead:  true,
		ActionAnalyticsRead:   true,
		ActionReportsGenerate: true,
	},
	RoleEmployee: {
		ActionEmployeesRead: true,
		ActionTasksRead:     true,
		ActionTasksUpdate:   true,
		ActionMoodLog:       true,
		ActionFeedbackWrite: true,
		ActionAttendanceLog: true,
	},
}

// Allows reports whether role may perform action. Unknown roles and
// unknown actions are always denied.
func Allows(role Role, action Action) bool {
	perms, ok := rolePermissions[role]
	if !ok {
		return false
	}
	return perms[action]
}
