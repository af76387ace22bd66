package hotp

import "errors"

var (
	// ErrEmptySecret is returned when a code is requested for an empty secret.
	ErrEmptySecret = errors.New("secret must not be empty")
	// ErrDigits is returned when the requested code length is outside 1..9.
	ErrDigits = errors.New("digits must be between 1 and 9")
	// ErrPeriod is returned when the TOTP period is zero.
	ErrPeriod = errors.New("period must be greater than zero")
)
