package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

var (
	emailRegex     = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	alphaDashRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	phoneRegex     = regexp.MustCompile(`^\+?[0-9][0-9 ().-]{3,19}$`)
)

// dateLayouts are the accepted free-form date inputs, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"02/01/2006",
	"01/02/2006",
	"January 2, 2006",
	"2 January 2006",
}

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func Email(field, value string, v Violations) {
	if value != "" && !emailRegex.MatchString(value) {
		v[field] = "email_invalid"
	}
}

// AlphaDash allows letters, digits, dashes and underscores.
func AlphaDash(field, value string, v Violations) {
	if value != "" && !alphaDashRegex.MatchString(value) {
		v[field] = "alpha_dash"
	}
}

func MinLen(field, value string, minLen int, v Violations) {
	if value != "" && utf8.RuneCountInString(value) < minLen {
		v[field] = "too_short"
	}
}

// Confirmed checks value against its *_confirmation counterpart.
func Confirmed(field, value, confirmation string, v Violations) {
	if value != confirmation {
		v[field] = "confirmation_mismatch"
	}
}

// Date fails unless the value parses with one of the accepted layouts.
func Date(field, value string, v Violations) {
	if value == "" {
		return
	}
	if _, ok := ParseDate(value); !ok {
		v[field] = "date_invalid"
	}
}

func Phone(field, value string, v Violations) {
	if value != "" && !phoneRegex.MatchString(value) {
		v[field] = "phone_invalid"
	}
}

// ParseDate tries the accepted layouts in order.
func ParseDate(value string) (time.Time, bool) {
	s := strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
