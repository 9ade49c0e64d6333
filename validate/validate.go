// Package validate holds the field validators applied at form boundaries,
// before any store or network call. Every validator is a pure function
// returning nil for a valid value or an error carrying the first failing
// reason, so callers can report per-field feedback as the user types.
package validate

import (
	"errors"
	"regexp"
	"strings"
)

// Validation errors returned by the field validators.
var (
	ErrNameRequired = errors.New("task name is required")

	ErrEmailRequired = errors.New("email is required")
	ErrEmailInvalid  = errors.New("invalid email format")
	ErrEmailGmail    = errors.New("invalid gmail address")

	ErrPasswordRequired  = errors.New("password is required")
	ErrPasswordTooShort  = errors.New("password must be at least 8 characters")
	ErrPasswordLowercase = errors.New("password must contain a lowercase letter")
	ErrPasswordUppercase = errors.New("password must contain an uppercase letter")
	ErrPasswordDigit     = errors.New("password must contain a digit")
	ErrPasswordSymbol    = errors.New("password must contain a symbol (@$!%*?&)")

	ErrDisplayNameRequired = errors.New("name is required")
	ErrDisplayNameTooShort = errors.New("name must be at least 2 characters")
	ErrDisplayNameLetters  = errors.New("name may only contain letters and spaces")
)

var (
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

	// Stricter sub-rule applied to any address claiming to be a Gmail
	// account: the local part is restricted to alphanumerics and . _ % + -
	// and the domain must be literally gmail.com.
	gmailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@gmail\.com$`)

	displayNamePattern = regexp.MustCompile(`^[A-Za-z ]+$`)
)

// passwordSymbols is the accepted symbol set for passwords.
const passwordSymbols = "@$!%*?&"

// TaskName validates a task name. Whitespace-only names are rejected.
func TaskName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	return nil
}

// Email validates a login email address. Addresses whose domain is gmail.com
// (compared case-insensitively) are additionally checked against the stricter
// Gmail-only pattern.
func Email(email string) error {
	if strings.TrimSpace(email) == "" {
		return ErrEmailRequired
	}
	if !emailPattern.MatchString(email) {
		return ErrEmailInvalid
	}
	at := strings.LastIndex(email, "@")
	domain := email[at+1:]
	if strings.EqualFold(domain, "gmail.com") && !gmailPattern.MatchString(email) {
		return ErrEmailGmail
	}
	return nil
}

// Password validates a registration password. The conditions are checked in a
// fixed order and the first failing reason is returned.
func Password(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if len(password) < 8 {
		return ErrPasswordTooShort
	}
	var lower, upper, digit bool
	for _, c := range password {
		switch {
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= 'A' && c <= 'Z':
			upper = true
		case c >= '0' && c <= '9':
			digit = true
		}
	}
	if !lower {
		return ErrPasswordLowercase
	}
	if !upper {
		return ErrPasswordUppercase
	}
	if !digit {
		return ErrPasswordDigit
	}
	if !strings.ContainsAny(password, passwordSymbols) {
		return ErrPasswordSymbol
	}
	return nil
}

// DisplayName validates a registration display name.
func DisplayName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrDisplayNameRequired
	}
	if len(trimmed) < 2 {
		return ErrDisplayNameTooShort
	}
	if !displayNamePattern.MatchString(trimmed) {
		return ErrDisplayNameLetters
	}
	return nil
}
