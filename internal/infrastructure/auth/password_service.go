package auth

import (
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/sibe/identity/domain"
)

// passwordSymbols is the punctuation set accepted by the strength policy.
const passwordSymbols = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

// PasswordServiceImpl implements domain.PasswordService with bcrypt.
type PasswordServiceImpl struct {
	cost int
}

// NewPasswordService creates a password service with the given bcrypt cost.
// A non-positive cost falls back to the platform default of 10.
func NewPasswordService(cost int) domain.PasswordService {
	if cost <= 0 {
		cost = 10
	}
	return &PasswordServiceImpl{cost: cost}
}

// Hash implements domain.PasswordService.
func (p *PasswordServiceImpl) Hash(password string) (string, error) {
	if password == "" {
		return "", domain.ErrEmptyPassword
	}
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// Verify implements domain.PasswordService. A mismatch is a false return,
// never an error.
func (p *PasswordServiceImpl) Verify(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// CheckStrength implements domain.PasswordService. Every violated rule is
// reported so a client can render all hints at once.
func (p *PasswordServiceImpl) CheckStrength(password string) []string {
	var violations []string

	if password == "" {
		return []string{"password is required"}
	}

	if len(password) < 8 {
		violations = append(violations, "password must be at least 8 characters long")
	}

	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}

	if !hasLower {
		violations = append(violations, "password must contain at least one lowercase letter")
	}
	if !hasUpper {
		violations = append(violations, "password must contain at least one uppercase letter")
	}
	if !hasDigit {
		violations = append(violations, "password must contain at least one digit")
	}
	if !hasSymbol {
		violations = append(violations, "password must contain at least one special character")
	}

	return violations
}
