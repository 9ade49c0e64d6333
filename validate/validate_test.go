package validate

import (
	"errors"
	"testing"
)

func TestTaskName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "valid name",
			input:   "Buy groceries",
			wantErr: nil,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: ErrNameRequired,
		},
		{
			name:    "whitespace only",
			input:   "   \t ",
			wantErr: ErrNameRequired,
		},
		{
			name:    "single character",
			input:   "a",
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := TaskName(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("TaskName(%q) = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr error
	}{
		{
			name:    "valid email",
			email:   "user@example.com",
			wantErr: nil,
		},
		{
			name:    "valid email with subdomain",
			email:   "user@mail.example.com",
			wantErr: nil,
		},
		{
			name:    "valid gmail",
			email:   "user@gmail.com",
			wantErr: nil,
		},
		{
			name:    "valid gmail with dots and plus",
			email:   "first.last+tag@gmail.com",
			wantErr: nil,
		},
		{
			name:    "two letter TLD",
			email:   "a@gmail.co",
			wantErr: nil,
		},
		{
			name:    "empty",
			email:   "",
			wantErr: ErrEmailRequired,
		},
		{
			name:    "missing at sign",
			email:   "userexample.com",
			wantErr: ErrEmailInvalid,
		},
		{
			name:    "missing domain dot",
			email:   "user@example",
			wantErr: ErrEmailInvalid,
		},
		{
			name:    "one letter TLD",
			email:   "user@example.c",
			wantErr: ErrEmailInvalid,
		},
		{
			name:    "missing local part",
			email:   "@example.com",
			wantErr: ErrEmailInvalid,
		},
		{
			// The generic pattern accepts this, but the Gmail sub-rule
			// requires the domain spelled in lowercase.
			name:    "uppercase gmail domain",
			email:   "user@GMAIL.com",
			wantErr: ErrEmailGmail,
		},
		{
			name:    "mixed case gmail domain",
			email:   "user@Gmail.Com",
			wantErr: ErrEmailGmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Email(tt.email)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Email(%q) = %v, want %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{
			name:     "valid password",
			password: "Aa1!aaaa",
			wantErr:  nil,
		},
		{
			name:     "empty",
			password: "",
			wantErr:  ErrPasswordRequired,
		},
		{
			name:     "too short",
			password: "short",
			wantErr:  ErrPasswordTooShort,
		},
		{
			name:     "seven characters",
			password: "Aa1!aaa",
			wantErr:  ErrPasswordTooShort,
		},
		{
			name:     "missing lowercase",
			password: "AAAA1!AAAA",
			wantErr:  ErrPasswordLowercase,
		},
		{
			name:     "missing uppercase",
			password: "alllowercase1!",
			wantErr:  ErrPasswordUppercase,
		},
		{
			name:     "missing digit",
			password: "Aaaaaaa!",
			wantErr:  ErrPasswordDigit,
		},
		{
			name:     "missing symbol",
			password: "Aaaaaaa1",
			wantErr:  ErrPasswordSymbol,
		},
		{
			name:     "symbol outside allowed set",
			password: "Aaaaaaa1#",
			wantErr:  ErrPasswordSymbol,
		},
		{
			// Length is reported before the missing character classes.
			name:     "short and missing classes",
			password: "abc",
			wantErr:  ErrPasswordTooShort,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Password(tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Password(%q) = %v, want %v", tt.password, err, tt.wantErr)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "valid name",
			input:   "Ada Lovelace",
			wantErr: nil,
		},
		{
			name:    "two characters",
			input:   "Al",
			wantErr: nil,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: ErrDisplayNameRequired,
		},
		{
			name:    "single character",
			input:   "A",
			wantErr: ErrDisplayNameTooShort,
		},
		{
			name:    "contains digits",
			input:   "Ada123",
			wantErr: ErrDisplayNameLetters,
		},
		{
			name:    "contains punctuation",
			input:   "Ada-Lovelace",
			wantErr: ErrDisplayNameLetters,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := DisplayName(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("DisplayName(%q) = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
