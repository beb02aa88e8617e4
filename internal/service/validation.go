package service

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/dtroode/lottery-server/internal/model"
)

const (
	passwordMinLength = 6
	passwordMaxLength = 12
	excludedNameChars = "*?!'^+%&/()=}][{$#@<>"
)

var (
	phonePattern = regexp.MustCompile(`^\d{4}-\d{3}-\d{4}$`)
	validate     = validator.New()
)

func validateRegistration(p model.RegistrationParams) error {
	if err := validate.Var(p.Email, "required,email"); err != nil {
		return model.NewValidationError("email", "invalid email address")
	}
	if err := validateName("firstname", p.Firstname); err != nil {
		return err
	}
	if err := validateName("lastname", p.Lastname); err != nil {
		return err
	}
	if !phonePattern.MatchString(p.Phone) {
		return model.NewValidationError("phone", "must be of the form XXXX-XXX-XXXX")
	}
	if strings.TrimSpace(p.DOB) == "" {
		return model.NewValidationError("dob", "required")
	}
	if strings.TrimSpace(p.Postcode) == "" {
		return model.NewValidationError("postcode", "required")
	}
	return validatePassword("password", p.Password)
}

func validateName(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return model.NewValidationError(field, "required")
	}
	if i := strings.IndexAny(value, excludedNameChars); i >= 0 {
		return model.NewValidationError(field, "character "+string(value[i])+" is not allowed")
	}
	return nil
}

func validatePassword(field, password string) error {
	if n := len([]rune(password)); n < passwordMinLength || n > passwordMaxLength {
		return model.NewValidationError(field, "must be between 6 and 12 characters")
	}

	var digit, upper, lower, special bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case !unicode.IsSpace(r):
			special = true
		}
	}
	if !digit || !upper || !lower || !special {
		return model.NewValidationError(field, "must contain a digit, a lowercase letter, an uppercase letter and a special character")
	}
	return nil
}
