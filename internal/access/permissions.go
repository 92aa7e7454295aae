// Package access holds the single (role, action) permission table. Both the
// navigation menu and the per-request enforcement check consult it, so the
// two cannot drift apart.
package access

type Action string

const (
	ActionEmployeeOverview Action = "Employee Overview"
	ActionEducationRecords Action = "Education Records"
	ActionFamilyDetails    Action = "Family Details"
	ActionTaskManagement   Action = "Task Management"
	ActionAttendance       Action = "Attendance"
	ActionRecognition      Action = "Recognition"
	ActionTraining         Action = "Training"
	ActionAnalytics        Action = "Real-Time Analytics"

	ActionAddEmployee      Action = "Add Employee"
	ActionAddEducation     Action = "Add Education"
	ActionAddFamilyDetails Action = "Add Family Details"
	ActionAddTask          Action = "Add Task"
	ActionAddAttendance    Action = "Add Attendance"
	ActionAddRecognition   Action = "Add Recognition"
	ActionAddTraining      Action = "Add Training"
	ActionUserManagement   Action = "User Management"

	// Not a menu section: exercised from within Task Management.
	ActionUpdateTaskStatus Action = "Update Task Status"
)

// Menu order matches the dashboard sidebar: the view sections for every role,
// the mutating sections appended for admin.
var orderedSections = []Action{
	ActionEmployeeOverview,
	ActionEducationRecords,
	ActionFamilyDetails,
	ActionTaskManagement,
	ActionAttendance,
	ActionRecognition,
	ActionTraining,
	ActionAnalytics,
	ActionAddEmployee,
	ActionAddEducation,
	ActionAddFamilyDetails,
	ActionAddTask,
	ActionAddAttendance,
	ActionAddRecognition,
	ActionAddTraining,
	ActionUserManagement,
}

var permissions = map[string]map[Action]bool{
	"admin": {
		ActionEmployeeOverview: true,
		ActionEducationRecords: true,
		ActionFamilyDetails:    true,
		ActionTaskManagement:   true,
		ActionAttendance:       true,
		ActionRecognition:      true,
		ActionTraining:         true,
		ActionAnalytics:        true,
		ActionAddEmployee:      true,
		ActionAddEducation:     true,
		ActionAddFamilyDetails: true,
		ActionAddTask:          true,
		ActionAddAttendance:    true,
		ActionAddRecognition:   true,
		ActionAddTraining:      true,
		ActionUserManagement:   true,
		ActionUpdateTaskStatus: true,
	},
	"user": {
		ActionEmployeeOverview: true,
		ActionEducationRecords: true,
		ActionFamilyDetails:    true,
		ActionTaskManagement:   true,
		ActionAttendance:       true,
		ActionRecognition:      true,
		ActionTraining:         true,
		ActionAnalytics:        true,
		ActionUpdateTaskStatus: true,
	},
}

// Can reports whether the role may perform the action. Unknown roles and
// unknown actions are denied.
func Can(role string, action Action) bool {
	return permissions[role][action]
}

// VisibleSections returns the ordered menu for the role.
func VisibleSections(role string) []Action {
	sections := make([]Action, 0, len(orderedSections))
	for _, section := range orderedSections {
		if Can(role, section) {
			sections = append(sections, section)
		}
	}
	return sections
}
