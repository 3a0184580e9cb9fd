// internal/common/validation/schema.go
package validation

import (
	"fmt"
	"regexp"
)

// JSONSchema defines the structure for input schemas.
type JSONSchema struct {
	Type                 string              `json:"type"`
	Properties           map[string]Property `json:"properties"`
	Required             []string            `json:"required,omitempty"`
	AdditionalProperties bool                `json:"additionalProperties,omitempty"`
}

type Property struct {
	Type      string   `json:"type"`
	Enum      []string `json:"enum,omitempty"`
	Pattern   *string  `json:"pattern,omitempty"`
	MinLength *int     `json:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty"`
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ValidateInput validates input against a JSON schema with detailed errors.
func ValidateInput(input map[string]interface{}, schema JSONSchema) *ValidationResult {
	errors := []ValidationError{}

	// Check required fields
	for _, requiredField := range schema.Required {
		v, exists := input[requiredField]
		if !exists {
			errors = append(errors, ValidationError{
				Field:   requiredField,
				Message: "required field missing",
				Code:    "REQUIRED_FIELD_MISSING",
			})
			continue
		}
		if s, ok := v.(string); ok && s == "" {
			errors = append(errors, ValidationError{
				Field:   requiredField,
				Message: "required field empty",
				Code:    "REQUIRED_FIELD_EMPTY",
			})
		}
	}

	// Validate field types and constraints
	for fieldName, value := range input {
		prop, exists := schema.Properties[fieldName]
		if !exists {
			if !schema.AdditionalProperties {
				errors = append(errors, ValidationError{
					Field:   fieldName,
					Message: "field not allowed in schema",
					Code:    "EXTRA_FIELD",
				})
			}
			continue
		}

		if value == nil {
			continue
		}

		errors = append(errors, validateProperty(fieldName, value, prop)...)
	}

	return &ValidationResult{
		Valid:  len(errors) == 0,
		Errors: errors,
	}
}

func validateProperty(field string, value interface{}, prop Property) []ValidationError {
	errors := []ValidationError{}

	switch prop.Type {
	case "string":
		s, ok := value.(string)
		if !ok {
			return append(errors, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("expected string, got %T", value),
				Code:    "TYPE_MISMATCH",
			})
		}
		if prop.MinLength != nil && len(s) < *prop.MinLength {
			errors = append(errors, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("shorter than minimum length %d", *prop.MinLength),
				Code:    "MIN_LENGTH",
			})
		}
		if prop.MaxLength != nil && len(s) > *prop.MaxLength {
			errors = append(errors, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("exceeds maximum length %d", *prop.MaxLength),
				Code:    "MAX_LENGTH",
			})
		}
		if len(prop.Enum) > 0 && s != "" && !contains(prop.Enum, s) {
			errors = append(errors, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("value %q not in allowed set", s),
				Code:    "ENUM_MISMATCH",
			})
		}
		if prop.Pattern != nil && s != "" {
			re, err := regexp.Compile(*prop.Pattern)
			if err == nil && !re.MatchString(s) {
				errors = append(errors, ValidationError{
					Field:   field,
					Message: "value does not match pattern",
					Code:    "PATTERN_MISMATCH",
				})
			}
		}
	case "boolean":
		if _, ok := value.(bool); !ok {
			errors = append(errors, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("expected boolean, got %T", value),
				Code:    "TYPE_MISMATCH",
			})
		}
	case "number":
		if _, ok := value.(float64); !ok {
			errors = append(errors, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("expected number, got %T", value),
				Code:    "TYPE_MISMATCH",
			})
		}
	}

	return errors
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
