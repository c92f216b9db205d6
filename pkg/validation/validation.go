package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// EmailRegex validates email format
var EmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail validates email address
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if len(email) > 254 {
		return fmt.Errorf("email is too long (max 254 characters)")
	}
	if !EmailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidatePersonName validates a first or last name
func ValidatePersonName(name, fieldName string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	length := utf8.RuneCountInString(name)
	if length < 3 {
		return fmt.Errorf("%s must be at least 3 characters", fieldName)
	}
	if length > 30 {
		return fmt.Errorf("%s is too long (max 30 characters)", fieldName)
	}
	return nil
}

// ValidatePassword validates password
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password is required")
	}
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	if len(password) > 128 {
		return fmt.Errorf("password is too long (max 128 characters)")
	}
	return nil
}

// ValidateChannelName validates a channel name
func ValidateChannelName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("channel name is required")
	}
	length := utf8.RuneCountInString(name)
	if length < 3 {
		return fmt.Errorf("channel name must be at least 3 characters")
	}
	if length > 50 {
		return fmt.Errorf("channel name is too long (max 50 characters)")
	}
	if !utf8.ValidString(name) {
		return fmt.Errorf("channel name contains invalid characters")
	}
	return nil
}

// ValidateStreamTitle validates a stream title
func ValidateStreamTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("stream title is required")
	}
	if utf8.RuneCountInString(title) > 100 {
		return fmt.Errorf("stream title is too long (max 100 characters)")
	}
	if !utf8.ValidString(title) {
		return fmt.Errorf("stream title contains invalid characters")
	}
	return nil
}

// ValidateDescription validates an optional description field
func ValidateDescription(description string) error {
	if utf8.RuneCountInString(description) > 500 {
		return fmt.Errorf("description is too long (max 500 characters)")
	}
	return nil
}

// ValidateSentiment validates an optional sentiment label
func ValidateSentiment(sentiment string) error {
	switch sentiment {
	case "", "positive", "negative", "neutral":
		return nil
	}
	return fmt.Errorf("sentiment must be positive, negative, or neutral")
}

// ValidateStatusFilter validates an optional stream status filter
func ValidateStatusFilter(status string) error {
	switch status {
	case "", "scheduled", "live", "ended":
		return nil
	}
	return fmt.Errorf("status must be scheduled, live, or ended")
}

// ValidateNonEmptyString validates that string is not empty after trimming
func ValidateNonEmptyString(s, fieldName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}
