// SPDX-License-Identifier: Apache-2.0

package validators

import (
	"context"
	"errors"
	"strings"
	"unicode"
)

// passwordSymbols is the set of characters accepted as the required special
// character.
const passwordSymbols = `!@#$%^&*()-_=+[]{};:'",.<>/?\|~` + "`"

const minPasswordLength = 8

// PasswordValidator implements the Validator interface for candidate
// passwords. A candidate must be at least 8 characters long and contain a
// lowercase letter, an uppercase letter, a digit, and a special character.
//
// All failed rules are reported together in a single joined error, so a
// caller surfaces the complete list of problems in one round trip.
type PasswordValidator struct {
}

// NewPasswordValidator constructs a new PasswordValidator and returns it as
// the Validator interface.
func NewPasswordValidator() Validator {
	return &PasswordValidator{}
}

// Validate checks the candidate password against the policy. obj must be a
// string; field-level scoping is not used. Returns ErrUnsupportedType for any
// other type, or a joined error wrapping every violated rule.
func (v *PasswordValidator) Validate(_ context.Context, obj any, _ ...string) error {
	password, ok := obj.(string)
	if !ok {
		return ErrUnsupportedType
	}

	var violations []error

	if len([]rune(password)) < minPasswordLength {
		violations = append(violations, ErrPasswordTooShort)
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
		violations = append(violations, ErrPasswordNoLower)
	}
	if !hasUpper {
		violations = append(violations, ErrPasswordNoUpper)
	}
	if !hasDigit {
		violations = append(violations, ErrPasswordNoDigit)
	}
	if !hasSymbol {
		violations = append(violations, ErrPasswordNoSymbol)
	}

	return errors.Join(violations...)
}
