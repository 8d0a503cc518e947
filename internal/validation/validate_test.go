package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{name: "valid username", username: "test_user", wantErr: false},
		{name: "valid with digits", username: "user123", wantErr: false},
		{name: "empty", username: "", wantErr: true},
		{name: "too short", username: "ab", wantErr: true},
		{name: "too long", username: "a123456789012345678901234567890123", wantErr: true},
		{name: "invalid characters", username: "user name", wantErr: true},
		{name: "unicode rejected", username: "пользователь", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "valid email", email: "test_user@mail.com", wantErr: false},
		{name: "empty", email: "", wantErr: true},
		{name: "no at sign", email: "mail.com", wantErr: true},
		{name: "no domain", email: "user@", wantErr: true},
		{name: "no tld", email: "user@mail", wantErr: true},
		{name: "spaces", email: "user name@mail.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "long enough", password: "greaterthaneight", wantErr: false},
		{name: "exactly minimum", password: "12345678", wantErr: false},
		{name: "too short", password: "short", wantErr: true},
		{name: "empty", password: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
