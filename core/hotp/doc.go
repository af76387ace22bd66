// Package hotp implements RFC 4226 HOTP and RFC 6238 TOTP code derivation
// for the fixed HMAC-SHA1, 6-digit, 30-second configuration used by the
// device.
//
// The package is pure computation: no I/O, no clock access, no storage. It is
// the most security-sensitive code in the system, so it stays deliberately
// small and takes already-decoded secret bytes rather than base32 strings.
//
// # Usage
//
//	code, err := hotp.DeriveTOTP(secret, uint64(now.Unix()), hotp.Period, hotp.Digits)
//	if err != nil {
//		return err
//	}
//	fmt.Println(code) // e.g. "287082"
//
// Counter-based derivation is also available directly:
//
//	code, err := hotp.Derive(secret, 42, hotp.Digits)
//
// Callers own the secret buffer and should zero it as soon as the derivation
// returns.
package hotp
