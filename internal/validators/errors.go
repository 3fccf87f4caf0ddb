package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")

	ErrPasswordTooShort = errors.New("password must be at least 8 characters long")
	ErrPasswordNoLower  = errors.New("password must contain a lowercase letter")
	ErrPasswordNoUpper  = errors.New("password must contain an uppercase letter")
	ErrPasswordNoDigit  = errors.New("password must contain a digit")
	ErrPasswordNoSymbol = errors.New("password must contain a special character")
)
