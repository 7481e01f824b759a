package validators

import (
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/flow-bank/models"
)

// MinPasswordLength is the minimum number of characters in a password.
const MinPasswordLength = 8

// passwordSymbols is the set of characters that satisfy the symbol rule.
const passwordSymbols = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

// PasswordCriteria reports which complexity rules a password satisfies.
type PasswordCriteria struct {
	Length bool
	Upper  bool
	Lower  bool
	Digit  bool
	Symbol bool
}

// CheckPassword evaluates raw against the five complexity rules.
func CheckPassword(raw string) PasswordCriteria {
	c := PasswordCriteria{Length: utf8.RuneCountInString(raw) >= MinPasswordLength}
	for _, r := range raw {
		switch {
		case r >= 'A' && r <= 'Z':
			c.Upper = true
		case r >= 'a' && r <= 'z':
			c.Lower = true
		case r >= '0' && r <= '9':
			c.Digit = true
		case strings.ContainsRune(passwordSymbols, r):
			c.Symbol = true
		}
	}
	return c
}

// Met returns how many of the five rules hold.
func (c PasswordCriteria) Met() int {
	n := 0
	for _, ok := range []bool{c.Length, c.Upper, c.Lower, c.Digit, c.Symbol} {
		if ok {
			n++
		}
	}
	return n
}

// Complex reports whether every rule holds.
func (c PasswordCriteria) Complex() bool {
	return c.Met() == 5
}

// PasswordStrength rates raw for display: two or fewer rules is weak,
// three or four is medium, all five is strong.
func PasswordStrength(raw string) models.PasswordStrength {
	switch met := CheckPassword(raw).Met(); {
	case met <= 2:
		return models.PasswordWeak
	case met <= 4:
		return models.PasswordMedium
	default:
		return models.PasswordStrong
	}
}

// ConfirmPassword checks that the confirmation field repeats the password.
func ConfirmPassword(password, confirmation string) error {
	if password != confirmation {
		return NewValidationError(FieldConfirmPassword, ErrPasswordMismatch)
	}
	return nil
}
