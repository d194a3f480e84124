package validation_test

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"theaifactory-backend/pkg/validation"
)

func TestIsValidSlug(t *testing.T) {
	t.Run("accepts lowercase hyphenated slug", func(t *testing.T) {
		assert.True(t, validation.IsValidSlug("ai-image-generator"))
	})

	t.Run("rejects spaces and uppercase", func(t *testing.T) {
		assert.False(t, validation.IsValidSlug("AI Image"))
	})

	t.Run("rejects underscores", func(t *testing.T) {
		assert.False(t, validation.IsValidSlug("ai_image"))
	})

	t.Run("rejects empty string", func(t *testing.T) {
		assert.False(t, validation.IsValidSlug(""))
	})
}

func TestRegisteredValidators(t *testing.T) {
	v := validator.New()
	validation.RegisterValidators(v)

	type form struct {
		Slug     string `validate:"required,slug"`
		Category string `validate:"required,project_category"`
	}

	t.Run("valid form passes", func(t *testing.T) {
		err := v.Struct(form{Slug: "smart-dashboard", Category: "Analytics"})
		assert.NoError(t, err)
	})

	t.Run("unknown category fails", func(t *testing.T) {
		err := v.Struct(form{Slug: "smart-dashboard", Category: "Blockchain"})
		assert.Error(t, err)
		msgs := validation.FormatValidationErrors(err)
		assert.Len(t, msgs, 1)
		assert.Contains(t, msgs[0], "Category")
	})

	t.Run("bad slug fails with field message", func(t *testing.T) {
		err := v.Struct(form{Slug: "Bad Slug", Category: "NLP"})
		assert.Error(t, err)
		msgs := validation.FormatValidationErrors(err)
		assert.Contains(t, msgs[0], "Slug")
	})
}
