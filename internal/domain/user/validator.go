package user

import (
	"fmt"
	"net/mail"
	"strings"
)

const (
	MaxEmailLen    = 254
	MinPasswordLen = 6
	// bcrypt ignores everything past 72 bytes
	MaxPasswordLen = 72
)

// Validator - checks user supplied credentials
type Validator interface {
	ValidateRegister(req RegisterRequest) error
	ValidateEmail(email string) error
	ValidatePassword(password string) error
}

type CredentialsValidator struct {
	minPasswordLen int
}

func NewCredentialsValidator() *CredentialsValidator {
	return &CredentialsValidator{minPasswordLen: MinPasswordLen}
}

func (v *CredentialsValidator) ValidateRegister(req RegisterRequest) error {
	if err := v.ValidateEmail(req.Email); err != nil {
		return fmt.Errorf("email validation failed: %w", err)
	}

	if err := v.ValidatePassword(req.Password); err != nil {
		return fmt.Errorf("password validation failed: %w", err)
	}

	return nil
}

func (v *CredentialsValidator) ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("email is required")
	}

	if len(email) > MaxEmailLen {
		return fmt.Errorf("email must be at most %d characters", MaxEmailLen)
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("email is not a valid address")
	}

	return nil
}

func (v *CredentialsValidator) ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password is required")
	}

	if len(password) < v.minPasswordLen {
		return fmt.Errorf("password must be at least %d characters", v.minPasswordLen)
	}

	if len(password) > MaxPasswordLen {
		return fmt.Errorf("password must be at most %d bytes", MaxPasswordLen)
	}

	return nil
}
