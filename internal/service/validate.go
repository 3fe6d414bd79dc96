package service

import (
	"net/mail"
	"strings"
	"unicode"

	"github.com/taskvault/taskvault/internal/apperr"
	"github.com/taskvault/taskvault/internal/models"
)

// passwordSymbols is the fixed set of accepted special characters.
const passwordSymbols = "@$!%*#?&"

func validateRegistration(req *models.RegisterRequest) error {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return apperr.Validation(apperr.CodeInvalidEmail, "email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return apperr.Validation(apperr.CodeInvalidEmail, "please provide a valid email address")
	}

	if err := validatePassword(req.Password); err != nil {
		return err
	}

	if req.FirstName != "" && len(req.FirstName) < 3 {
		return apperr.Validation(apperr.CodeInvalidName, "first name must be at least 3 characters long")
	}
	if req.LastName != "" && len(req.LastName) < 3 {
		return apperr.Validation(apperr.CodeInvalidName, "last name must be at least 3 characters long")
	}

	return nil
}

// validatePassword enforces the password policy: minimum 8 characters, at
// least one letter, one digit, and one symbol from the fixed set.
func validatePassword(password string) error {
	if len(password) < 8 {
		return apperr.Validation(apperr.CodeWeakPassword, "password must be at least 8 characters long")
	}

	var hasLetter, hasDigit, hasSymbol bool
	for _, c := range password {
		switch {
		case unicode.IsLetter(c):
			hasLetter = true
		case unicode.IsDigit(c):
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, c):
			hasSymbol = true
		}
	}

	if !hasLetter || !hasDigit || !hasSymbol {
		return apperr.Validation(apperr.CodeWeakPassword,
			"password must contain at least one letter, one number, and one special character")
	}
	return nil
}
