package hotp

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/binary"
	"strconv"
)

// Fixed one-time-password parameters supported by the device. Provisioning
// rejects anything else up front, so the rest of the system can treat these
// as constants.
const (
	// Digits is the length of every generated code.
	Digits = 6
	// Period is the TOTP time-step size in seconds.
	Period = 30
)

// pow10 maps a digit count to its decimal modulus. Indexed by digits 0..9.
var pow10 = [10]uint64{1, 10, 100, 1_000, 10_000, 100_000, 1_000_000, 10_000_000, 100_000_000, 1_000_000_000}

// Derive computes an RFC 4226 HOTP code: HMAC-SHA1 over the 8-byte big-endian
// counter keyed with secret, dynamic truncation to a 31-bit integer, reduced
// modulo 10^digits and left-padded with zeros.
//
// The computation is deterministic and branch-free with respect to the secret
// bytes; only the explicit preconditions (non-empty secret, digits in 1..9)
// can fail.
func Derive(secret []byte, counter uint64, digits int) (string, error) {
	if len(secret) == 0 {
		return "", ErrEmptySecret
	}
	if digits < 1 || digits > 9 {
		return "", ErrDigits
	}

	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], counter)

	mac := hmac.New(sha1.New, secret)
	mac.Write(msg[:])
	sum := mac.Sum(nil)

	// Dynamic truncation: the low nibble of the final digest byte selects a
	// 4-byte window, read big-endian with the top bit masked off.
	offset := sum[len(sum)-1] & 0x0f
	value := uint64(binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7fffffff)

	return formatDecimal(value%pow10[digits], digits), nil
}

// DeriveTOTP computes an RFC 6238 TOTP code for the given UTC epoch time:
// HOTP with counter = epochSeconds / periodSeconds.
func DeriveTOTP(secret []byte, epochSeconds uint64, periodSeconds uint32, digits int) (string, error) {
	if periodSeconds == 0 {
		return "", ErrPeriod
	}
	return Derive(secret, epochSeconds/uint64(periodSeconds), digits)
}

// formatDecimal renders v as exactly width decimal digits, zero padded.
func formatDecimal(v uint64, width int) string {
	s := strconv.FormatUint(v, 10)
	if len(s) >= width {
		return s
	}
	buf := make([]byte, width)
	pad := width - len(s)
	for i := 0; i < pad; i++ {
		buf[i] = '0'
	}
	copy(buf[pad:], s)
	return string(buf)
}
