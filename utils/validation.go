package utils

import (
	"fmt"
	"regexp"
)

// Email and phone regex patterns
var (
	EmailRegex  = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	MobileRegex = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
)

// ValidationRules contains validation configuration
type ValidationRules struct {
	MaxNameLength    int
	MaxCollegeLength int
}

// DefaultValidationRules provides default validation constraints
var DefaultValidationRules = ValidationRules{
	MaxNameLength:    100,
	MaxCollegeLength: 200,
}

// ValidateEmail checks if email format is valid
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !EmailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidateMobile checks if mobile number is in E.164 format
func ValidateMobile(mobile string) error {
	if mobile == "" {
		return fmt.Errorf("mobile is required")
	}
	if !MobileRegex.MatchString(mobile) {
		return fmt.Errorf("invalid mobile format (use E.164 format, e.g., +919876543210)")
	}
	return nil
}

// ValidateName checks if name meets requirements
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("full name is required")
	}
	if len(name) > DefaultValidationRules.MaxNameLength {
		return fmt.Errorf("full name must be less than %d characters", DefaultValidationRules.MaxNameLength)
	}
	return nil
}

// ValidateCollege checks if college meets requirements
func ValidateCollege(college string) error {
	if college != "" && len(college) > DefaultValidationRules.MaxCollegeLength {
		return fmt.Errorf("college must be less than %d characters", DefaultValidationRules.MaxCollegeLength)
	}
	return nil
}
