package catalog

import (
	"net/url"
	"strings"

	"github.com/rcooper/trailhead-backend/models"
)

// FieldError is one field-level validation failure, addressed to the form
// control that caused it.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type FieldErrors []FieldError

// Assemble copies the descriptor's recognized form fields onto target and
// collects field-level failures. Form fields outside the schema are
// ignored. A key absent from the form leaves the target's value alone; a
// key submitted empty assigns the empty value, so an edit can clear an
// optional field. target keeps every successfully assigned value even when
// other fields fail, so the caller can hand the draft back for re-display
// exactly as submitted.
func Assemble(target *models.Resource, form url.Values, desc Descriptor) FieldErrors {
	var fieldErrs FieldErrors
	for _, field := range desc.Fields {
		if !form.Has(field.Name) {
			if field.Required {
				fieldErrs = append(fieldErrs, FieldError{Field: field.Name, Message: "is required"})
			}
			continue
		}
		value := form.Get(field.Name)
		if field.Required && strings.TrimSpace(value) == "" {
			fieldErrs = append(fieldErrs, FieldError{Field: field.Name, Message: "is required"})
			continue
		}
		if err := field.Assign(target, value); err != nil {
			fieldErrs = append(fieldErrs, FieldError{Field: field.Name, Message: err.Error()})
		}
	}
	return fieldErrs
}
