package otpauth

import (
	"encoding/base32"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/quadkey/quadkey/core/hotp"
)

// Algorithm is the only hash the device supports.
const Algorithm = "SHA1"

// Params is a parsed otpauth://totp provisioning URI.
type Params struct {
	// Label is the display label (the path component before any colon).
	Label string
	// Account is the optional account part after the colon in the label.
	Account string
	// Issuer is the issuer query parameter, if present.
	Issuer string
	// Secret is the base32-decoded shared key.
	Secret []byte
}

// Wipe zeroes the secret bytes in place.
func (p *Params) Wipe() {
	for i := range p.Secret {
		p.Secret[i] = 0
	}
}

// Parse extracts provisioning parameters from an otpauth://totp URI.
//
// Only the fixed SHA1, 6-digit, 30-second variant is accepted: a URI asking
// for anything else fails with ErrUnsupportedParameters rather than being
// silently coerced, because codes generated under substituted parameters
// would be wrong in a way that only shows up as rejected logins. Missing
// optional parameters mean the fixed defaults.
func Parse(raw string) (Params, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Params{}, errors.Join(ErrMalformedURI, err)
	}
	if u.Scheme != "otpauth" {
		return Params{}, errors.Join(ErrMalformedURI, errors.New("scheme must be otpauth"))
	}
	if !strings.EqualFold(u.Host, "totp") {
		// hotp and friends are real otpauth types, just not ones this
		// device implements.
		return Params{}, errors.Join(ErrUnsupportedParameters, errors.New("only totp URIs are supported"))
	}

	q := u.Query()
	if alg := q.Get("algorithm"); alg != "" && !strings.EqualFold(alg, Algorithm) {
		return Params{}, errors.Join(ErrUnsupportedParameters, errors.New("algorithm must be "+Algorithm))
	}
	if d := q.Get("digits"); d != "" && d != strconv.Itoa(hotp.Digits) {
		return Params{}, errors.Join(ErrUnsupportedParameters, errors.New("digits must be 6"))
	}
	if p := q.Get("period"); p != "" && p != strconv.Itoa(hotp.Period) {
		return Params{}, errors.Join(ErrUnsupportedParameters, errors.New("period must be 30"))
	}

	encoded := q.Get("secret")
	if encoded == "" {
		return Params{}, errors.Join(ErrMalformedURI, errors.New("missing secret parameter"))
	}
	secret, err := DecodeSecret(encoded)
	if err != nil {
		return Params{}, errors.Join(ErrMalformedURI, err)
	}

	label, account := splitLabel(strings.TrimPrefix(u.Path, "/"))

	return Params{
		Label:   label,
		Account: account,
		Issuer:  q.Get("issuer"),
		Secret:  secret,
	}, nil
}

// URI rebuilds the provisioning URI for p with the fixed parameters spelled
// out, suitable for re-enrolling the account into another authenticator.
func (p Params) URI() string {
	label := p.Label
	if p.Account != "" {
		label += ":" + p.Account
	}

	q := url.Values{}
	q.Set("secret", EncodeSecret(p.Secret))
	if p.Issuer != "" {
		q.Set("issuer", p.Issuer)
	}
	q.Set("algorithm", Algorithm)
	q.Set("digits", strconv.Itoa(hotp.Digits))
	q.Set("period", strconv.Itoa(hotp.Period))

	u := url.URL{
		Scheme:   "otpauth",
		Host:     "totp",
		Path:     "/" + label,
		RawQuery: q.Encode(),
	}
	return u.String()
}

// DecodeSecret decodes a base32 shared key, tolerating the sloppy forms
// issuers actually hand out: lowercase, embedded spaces, missing padding.
func DecodeSecret(encoded string) ([]byte, error) {
	s := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(encoded), " ", ""))
	s = strings.TrimRight(s, "=")
	if s == "" {
		return nil, errors.New("empty base32 secret")
	}
	if n := len(s) % 8; n != 0 {
		s += strings.Repeat("=", 8-n)
	}
	return base32.StdEncoding.DecodeString(s)
}

// EncodeSecret renders secret bytes as unpadded uppercase base32, the form
// authenticator apps expect in provisioning URIs.
func EncodeSecret(secret []byte) string {
	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(secret)
}

// splitLabel separates an "issuer:account" label path into its two parts.
func splitLabel(path string) (label, account string) {
	if i := strings.Index(path, ":"); i >= 0 {
		return path[:i], strings.TrimSpace(path[i+1:])
	}
	return path, ""
}
