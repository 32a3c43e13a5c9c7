// File: /utils/validators.go
package utils

import (
	"regexp"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func IsValidPassword(password string) bool {
	return len(password) >= 6
}

func IsValidGraduationYear(year int) bool {
	return year >= 1900 && year <= 2100
}

func IsValidCGPA(cgpa float64) bool {
	return cgpa >= 0 && cgpa <= 10
}
