// internal/utils/validator.go
package utils

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("strong_password", validateStrongPassword)
	validate.RegisterValidation("username", validateUsername)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateStrongPassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()

	if len(password) < 8 {
		return false
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}

	return hasUpper && hasLower && hasNumber && hasSpecial
}

// Usernames are strictly alphanumeric, no underscores or spaces.
func validateUsername(fl validator.FieldLevel) bool {
	username := fl.Field().String()

	if len(username) < 1 || len(username) > 255 {
		return false
	}

	matched, _ := regexp.MatchString("^[a-zA-Z0-9]+$", username)
	return matched
}

func GetValidationErrors(err error) []string {
	if err == nil {
		return nil
	}

	var messages []string

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			messages = append(messages, getValidationMessage(e))
		}
		return messages
	}

	return []string{err.Error()}
}

func getValidationMessage(e validator.FieldError) string {
	field := strings.ToLower(e.Field())
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return "Invalid email address format"
	case "min":
		return field + " must be at least " + e.Param() + " characters"
	case "max":
		return field + " must be at most " + e.Param() + " characters"
	case "gt":
		return field + " must be greater than " + e.Param()
	case "gte":
		return field + " must be greater than or equal to " + e.Param()
	case "strong_password":
		return "Password must be at least 8 characters long and include an uppercase letter, a lowercase letter, a number, and a special character"
	case "username":
		return "Username must be alphanumeric (letters and numbers only, no special characters or spaces)"
	default:
		return field + " is invalid"
	}
}
