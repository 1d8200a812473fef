package forms

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Validator checks one field value and returns an error message, or
// empty when the value is acceptable
type Validator func(value string) string

// Rule binds a validator to a named field
type Rule struct {
	Field string
	Check Validator
}

var (
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s()-]+$`)
)

// Required rejects empty and whitespace-only values
func Required(message string) Validator {
	return func(value string) string {
		if strings.TrimSpace(value) == "" {
			return message
		}
		return ""
	}
}

// Pattern rejects non-empty values that do not match the expression.
// Empty values pass; pair with Required when the field is mandatory.
func Pattern(re *regexp.Regexp, message string) Validator {
	return func(value string) string {
		if strings.TrimSpace(value) == "" {
			return ""
		}
		if !re.MatchString(value) {
			return message
		}
		return ""
	}
}

// Email validates an email address
func Email(message string) Validator {
	return Pattern(emailPattern, message)
}

// Phone validates a phone number
func Phone(message string) Validator {
	return Pattern(phonePattern, message)
}

// IntRange rejects values that do not parse as an integer within
// [min, max]
func IntRange(min, max int, message string) Validator {
	return func(value string) string {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < min || n > max {
			return message
		}
		return ""
	}
}

// MinLen rejects values shorter than n characters after trimming
func MinLen(n int, message string) Validator {
	return func(value string) string {
		if len(strings.TrimSpace(value)) < n {
			return message
		}
		return ""
	}
}

// NotPastDate rejects dates before today. The value is a plain
// calendar date; comparison is day-granular in local time.
func NotPastDate(message string) Validator {
	return func(value string) string {
		value = strings.TrimSpace(value)
		if value == "" {
			return ""
		}
		d, err := time.ParseInLocation("2006-01-02", value, time.Local)
		if err != nil {
			return message
		}
		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
		if d.Before(today) {
			return message
		}
		return ""
	}
}
