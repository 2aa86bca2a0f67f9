package validators

import (
	"sort"
	"strings"

	"github.com/diewo77/clinic-admin/i18n"
	"github.com/diewo77/clinic-admin/validation"
)

// ValidationError aggregates field violations into one recoverable error.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.join(func(field, code string) string {
		return field + ": " + code
	})
}

// Message renders the violations as a localized, human-readable string
// suitable for a flash message.
func (e *ValidationError) Message(lang string) string {
	return e.join(func(field, code string) string {
		return field + ": " + i18n.T(lang, code)
	})
}

func (e *ValidationError) join(format func(field, code string) string) string {
	fields := make([]string, 0, len(e.Violations))
	for f := range e.Violations {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, format(f, e.Violations[f]))
	}
	return strings.Join(parts, "; ")
}

// AsValidation returns err as a *ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	ve, ok := err.(*ValidationError)
	return ve, ok
}

func fail(v validation.Violations) error {
	if v.Empty() {
		return nil
	}
	return &ValidationError{Violations: v}
}
