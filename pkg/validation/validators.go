package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"theaifactory-backend/internal/domain"
)

// slugRegex is the only accepted shape for a project slug. The slug is the
// project's stable external identifier, so the character class is strict.
var slugRegex = regexp.MustCompile(`^[a-z0-9-]+$`)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("slug", ValidSlug)
	_ = v.RegisterValidation("project_category", ValidCategory)
}

// ValidSlug validates a URL-safe project slug: lowercase letters, digits
// and hyphens only. Empty strings are rejected.
func ValidSlug(fl validator.FieldLevel) bool {
	return IsValidSlug(fl.Field().String())
}

// IsValidSlug is the plain-function form of the slug check.
func IsValidSlug(s string) bool {
	return slugRegex.MatchString(s)
}

// ValidCategory validates that a category belongs to the fixed set.
func ValidCategory(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	for _, c := range domain.Categories {
		if val == c {
			return true
		}
	}
	return false
}
