package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

const maxSenderLength = 64

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(field, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: field, Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: field, Message: "invalid email format"}
	}
	return nil
}

// ValidateSender checks a canonical sender key. Keys end up verbatim in the answer
// field of every question, so they must be short and free of whitespace.
func ValidateSender(field, name string) error {
	if name == "" {
		return ValidationError{Field: field, Message: "name is required"}
	}
	if utf8.RuneCountInString(name) > maxSenderLength {
		return ValidationError{Field: field, Message: fmt.Sprintf("name must be at most %d characters", maxSenderLength)}
	}
	if strings.ContainsFunc(name, unicode.IsSpace) {
		return ValidationError{Field: field, Message: "name must not contain whitespace"}
	}
	return nil
}

// ValidatePhone checks a phone identifier of the export: digits with an optional
// leading plus, spaces allowed
func ValidatePhone(field, phone string) error {
	compact := strings.ReplaceAll(strings.TrimSpace(phone), " ", "")
	digits := strings.TrimPrefix(compact, "+")
	if digits == "" {
		return ValidationError{Field: field, Message: "phone number is required"}
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return ValidationError{Field: field, Message: "phone number may only contain digits"}
		}
	}
	return nil
}
