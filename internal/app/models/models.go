package models

// Role defines the user role type
type Role string

const (
	RoleStudent     Role = "student"
	RoleTeacher     Role = "teacher"
	RoleParent      Role = "parent"
	RoleSchoolAdmin Role = "school_admin"
)

// ValidRole reports whether the given role is one of the four known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleParent, RoleSchoolAdmin:
		return true
	}
	return false
}

// AgeGroup defines the student age bracket used for course targeting
type AgeGroup string

const (
	AgeGroupJunior AgeGroup = "6-11"
	AgeGroupSenior AgeGroup = "12-17"
)

// ValidAgeGroup reports whether the given age group is known.
func ValidAgeGroup(g AgeGroup) bool {
	return g == AgeGroupJunior || g == AgeGroupSenior
}

// SubscriptionStatus tracks the subscription state of a user or school
type SubscriptionStatus string

const (
	SubscriptionPending   SubscriptionStatus = "pending"
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionExpired   SubscriptionStatus = "expired"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

// PackageType distinguishes individual subscriptions from school licenses
type PackageType string

const (
	PackageIndividual PackageType = "individual"
	PackageSchool     PackageType = "school"
)

// RelationshipType qualifies a parent-child link
type RelationshipType string

const (
	RelationshipParent   RelationshipType = "parent"
	RelationshipGuardian RelationshipType = "guardian"
)

// LessonType classifies lesson content
type LessonType string

const (
	LessonVideo       LessonType = "video"
	LessonInteractive LessonType = "interactive"
	LessonQuiz        LessonType = "quiz"
	LessonProject     LessonType = "project"
)
