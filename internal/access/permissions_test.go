package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var mutatingSections = []Action{
	ActionAddEmployee,
	ActionAddEducation,
	ActionAddFamilyDetails,
	ActionAddTask,
	ActionAddAttendance,
	ActionAddRecognition,
	ActionAddTraining,
	ActionUserManagement,
}

func TestUserMenuHasNoMutatingSections(t *testing.T) {
	sections := VisibleSections("user")

	for _, mutating := range mutatingSections {
		assert.NotContains(t, sections, mutating)
	}
}

func TestAdminMenuContainsEverySection(t *testing.T) {
	sections := VisibleSections("admin")
	assert.Len(t, sections, len(orderedSections))
}

func TestMenuAndEnforcementAgree(t *testing.T) {
	// The same table backs both, so each visible section must pass the
	// enforcement check and each hidden one must fail it.
	for _, role := range []string{"admin", "user"} {
		visible := make(map[Action]bool)
		for _, section := range VisibleSections(role) {
			visible[section] = true
		}
		for _, section := range orderedSections {
			assert.Equal(t, visible[section], Can(role, section), "role=%s section=%s", role, section)
		}
	}
}

func TestBothRolesMayUpdateTaskStatus(t *testing.T) {
	assert.True(t, Can("admin", ActionUpdateTaskStatus))
	assert.True(t, Can("user", ActionUpdateTaskStatus))
}

func TestUnknownRoleIsDeniedEverything(t *testing.T) {
	assert.False(t, Can("superuser", ActionEmployeeOverview))
	assert.Empty(t, VisibleSections("superuser"))
}
