// Package otpauth parses and builds otpauth://totp provisioning URIs for the
// management path.
//
// The device supports exactly one code variant (HMAC-SHA1, 6 digits, 30
// second period), so Parse validates rather than configures: a URI asking
// for any other variant is rejected with ErrUnsupportedParameters instead of
// being quietly downgraded.
//
// # Usage
//
//	params, err := otpauth.Parse("otpauth://totp/GitHub:alice?secret=JBSWY3DPEHPK3PXP&issuer=GitHub")
//	if err != nil {
//		return err
//	}
//	defer params.Wipe()
//
//	err = db.WriteSlot(slot, params.Label, params.Secret)
//
// Params.URI reverses the mapping for re-export (for example as a QR code).
package otpauth
