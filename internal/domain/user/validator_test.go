package user

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialsValidator_ValidateEmail(t *testing.T) {
	validator := NewCredentialsValidator()

	tests := []struct {
		name        string
		email       string
		wantErr     bool
		expectedErr string
	}{
		{
			name:    "valid email",
			email:   "a@x.com",
			wantErr: false,
		},
		{
			name:        "empty",
			email:       "",
			wantErr:     true,
			expectedErr: "email is required",
		},
		{
			name:        "blank",
			email:       "   ",
			wantErr:     true,
			expectedErr: "email is required",
		},
		{
			name:        "no at sign",
			email:       "alice",
			wantErr:     true,
			expectedErr: "email is not a valid address",
		},
		{
			name:        "display name form",
			email:       "Alice <a@x.com>",
			wantErr:     true,
			expectedErr: "email is not a valid address",
		},
		{
			name:        "too long",
			email:       strings.Repeat("a", 250) + "@x.com",
			wantErr:     true,
			expectedErr: "email must be at most 254 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateEmail(tt.email)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.expectedErr, err.Error())
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCredentialsValidator_ValidatePassword(t *testing.T) {
	validator := NewCredentialsValidator()

	tests := []struct {
		name        string
		password    string
		wantErr     bool
		expectedErr string
	}{
		{
			name:     "valid",
			password: "secret1",
		},
		{
			name:        "empty",
			password:    "",
			wantErr:     true,
			expectedErr: "password is required",
		},
		{
			name:        "too short",
			password:    "12345",
			wantErr:     true,
			expectedErr: "password must be at least 6 characters",
		},
		{
			name:        "over bcrypt limit",
			password:    strings.Repeat("p", 73),
			wantErr:     true,
			expectedErr: "password must be at most 72 bytes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidatePassword(tt.password)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.expectedErr, err.Error())
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCredentialsValidator_ValidateRegister(t *testing.T) {
	validator := NewCredentialsValidator()

	assert.NoError(t, validator.ValidateRegister(RegisterRequest{Email: "a@x.com", Password: "secret1"}))

	err := validator.ValidateRegister(RegisterRequest{Email: "", Password: "secret1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email validation failed")

	err = validator.ValidateRegister(RegisterRequest{Email: "a@x.com", Password: "1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password validation failed")
}
