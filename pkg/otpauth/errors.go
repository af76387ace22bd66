package otpauth

import "errors"

var (
	// ErrMalformedURI is returned when the URI cannot be parsed, has the
	// wrong shape, lacks a secret, or the secret fails base32 decoding.
	ErrMalformedURI = errors.New("malformed otpauth URI")
	// ErrUnsupportedParameters is returned when the URI requests a variant
	// other than the fixed SHA1, 6-digit, 30-second configuration.
	ErrUnsupportedParameters = errors.New("unsupported otpauth parameters")
)
