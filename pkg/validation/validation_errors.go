package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-facing labels.
var FieldLabels = map[string]string{
	"Title":            "Title",
	"Slug":             "Slug",
	"Description":      "Description",
	"Category":         "Category",
	"ImageURL":         "Cover Image URL",
	"VideoURL":         "Video URL",
	"DocumentationURL": "Documentation URL",
	"GithubURL":        "GitHub URL",
	"Email":            "Email",
	"Password":         "Password",
}

// FormatValidationErrors converts validator.ValidationErrors to
// per-field user-facing messages.
func FormatValidationErrors(err error) []string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s: required", label)
	case "min":
		return fmt.Sprintf("%s: must be at least %s characters", label, e.Param())
	case "max":
		return fmt.Sprintf("%s: must be at most %s characters", label, e.Param())
	case "email":
		return fmt.Sprintf("%s: invalid email address", label)
	case "url":
		return fmt.Sprintf("%s: must be a valid absolute URL", label)
	case "slug":
		return fmt.Sprintf("%s: only lowercase letters, digits and hyphens are allowed", label)
	case "project_category":
		return fmt.Sprintf("%s: must be one of the known categories", label)
	case "oneof":
		return fmt.Sprintf("%s: must be one of: %s", label, strings.ReplaceAll(e.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s: validation failed (%s)", label, e.Tag())
	}
}

func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return fieldName
}
