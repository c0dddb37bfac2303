package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/codewisehub/codewisehub-backend/internal/app/models"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`

	// Password min length (matches the public signup contract)
	PasswordMinLength = 6

	// Name validation min/max length
	NameMinLength = 1
	NameMaxLength = 200
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email *regexp.Regexp
}{
	Email: regexp.MustCompile(EmailPattern),
}

// ValidEmail reports whether the value is an email-shaped string.
func ValidEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(email)
}

// RegisterCustomRules installs domain enum validators on a validator instance.
// Tags: userrole, agegroup, packagetype, relationshiptype, lessontype.
func RegisterCustomRules(v *validator.Validate) error {
	if err := v.RegisterValidation("userrole", func(fl validator.FieldLevel) bool {
		return models.ValidRole(models.Role(fl.Field().String()))
	}); err != nil {
		return err
	}
	if err := v.RegisterValidation("agegroup", func(fl validator.FieldLevel) bool {
		return models.ValidAgeGroup(models.AgeGroup(fl.Field().String()))
	}); err != nil {
		return err
	}
	if err := v.RegisterValidation("packagetype", func(fl validator.FieldLevel) bool {
		t := models.PackageType(fl.Field().String())
		return t == models.PackageIndividual || t == models.PackageSchool
	}); err != nil {
		return err
	}
	if err := v.RegisterValidation("relationshiptype", func(fl validator.FieldLevel) bool {
		t := models.RelationshipType(fl.Field().String())
		return t == models.RelationshipParent || t == models.RelationshipGuardian
	}); err != nil {
		return err
	}
	return v.RegisterValidation("lessontype", func(fl validator.FieldLevel) bool {
		t := models.LessonType(fl.Field().String())
		switch t {
		case models.LessonVideo, models.LessonInteractive, models.LessonQuiz, models.LessonProject:
			return true
		}
		return false
	})
}
