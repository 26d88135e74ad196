package validators

import (
	"carelink_backend_go/models"
)

// Errors collects field-keyed validation messages for a single request.
type Errors map[string]string

func (e Errors) Add(field, message string) {
	if _, taken := e[field]; !taken {
		e[field] = message
	}
}

func (e Errors) HasErrors() bool {
	return len(e) > 0
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ValidateContact checks a phone contact: digits only, 10 to 15 of them.
func ValidateContact(contact string) string {
	if !isDigits(contact) {
		return "Contact must contain only digits"
	}
	if len(contact) < 10 || len(contact) > 15 {
		return "Contact must be 10-15 digits"
	}
	return ""
}

func ValidateAge(age int) string {
	if age < 0 || age > 150 {
		return "Age must be between 0 and 150"
	}
	return ""
}

func ValidateExperienceYears(years int) string {
	if years < 0 {
		return "Experience cannot be negative"
	}
	if years > 70 {
		return "Experience seems unrealistic (max 70 years)"
	}
	return ""
}

func ValidateSpecialization(specialization string) string {
	if _, ok := models.SpecializationDisplay[specialization]; !ok {
		return "Specialization is not a valid choice"
	}
	return ""
}

func ValidateGender(gender string) string {
	if _, ok := models.GenderDisplay[gender]; !ok {
		return "Gender is not a valid choice"
	}
	return ""
}

// ValidatePassword enforces the registration strength policy: at least
// 8 characters and not entirely numeric.
func ValidatePassword(password string) string {
	if len(password) < 8 {
		return "Password must be at least 8 characters long"
	}
	if isDigits(password) {
		return "Password cannot be entirely numeric"
	}
	return ""
}
