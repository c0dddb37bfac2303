package middleware

import "github.com/codewisehub/codewisehub-backend/internal/app/models"

// Capability names a protected operation. Routes declare the capability they
// need; the role table below is the single place mapping roles to what they
// may do.
type Capability string

// Protected operations
const (
	CapabilityCreateSchool           Capability = "school:create"
	CapabilityCreatePackage          Capability = "package:create"
	CapabilityCreateSchoolUser       Capability = "school:create-user"
	CapabilityViewSchoolUsers        Capability = "school:view-users"
	CapabilityCreateCourse           Capability = "course:create"
	CapabilityCreateLesson           Capability = "course:create-lesson"
	CapabilityCreateRoboticsActivity Capability = "robotics:create"
	CapabilityLinkChild              Capability = "family:link-child"
	CapabilityViewChildren           Capability = "family:view-children"
	CapabilitySubmitProgress         Capability = "progress:submit"
	CapabilitySaveProject            Capability = "project:save"
	CapabilityEarnAchievement        Capability = "achievement:earn"
)

var capabilityRoles = map[Capability][]models.Role{
	CapabilityCreateSchool:           {models.RoleSchoolAdmin},
	CapabilityCreatePackage:          {models.RoleSchoolAdmin},
	CapabilityCreateSchoolUser:       {models.RoleSchoolAdmin},
	CapabilityViewSchoolUsers:        {models.RoleSchoolAdmin, models.RoleTeacher},
	CapabilityCreateCourse:           {models.RoleTeacher, models.RoleSchoolAdmin},
	CapabilityCreateLesson:           {models.RoleTeacher, models.RoleSchoolAdmin},
	CapabilityCreateRoboticsActivity: {models.RoleTeacher, models.RoleSchoolAdmin},
	CapabilityLinkChild:              {models.RoleParent},
	CapabilityViewChildren:           {models.RoleParent},
	CapabilitySubmitProgress:         {models.RoleStudent},
	CapabilitySaveProject:            {models.RoleStudent},
	CapabilityEarnAchievement:        {models.RoleStudent},
}

// RoleAllowed reports whether the role may perform the capability. Unknown
// capabilities allow nobody.
func RoleAllowed(capability Capability, role models.Role) bool {
	for _, allowed := range capabilityRoles[capability] {
		if allowed == role {
			return true
		}
	}
	return false
}
