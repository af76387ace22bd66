package hotp_test

import (
	"encoding/base32"
	"testing"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quadkey/quadkey/core/hotp"
)

// rfcSecret is the shared secret from RFC 4226 Appendix D and the RFC 6238
// SHA1 test vectors.
var rfcSecret = []byte("12345678901234567890")

func TestDerive_RFC4226Vectors(t *testing.T) {
	want := []string{
		"755224", "287082", "359152", "969429", "338314",
		"254676", "287922", "162583", "399871", "520489",
	}

	for counter, expected := range want {
		code, err := hotp.Derive(rfcSecret, uint64(counter), 6)
		require.NoError(t, err)
		assert.Equal(t, expected, code, "counter %d", counter)
	}
}

func TestDeriveTOTP_RFC6238Vectors(t *testing.T) {
	// RFC 6238 publishes 8-digit codes; the 6-digit codes are the same
	// truncated value reduced mod 10^6.
	cases := []struct {
		epoch uint64
		code  string
	}{
		{59, "287082"},
		{1111111109, "081804"},
		{1111111111, "050471"},
		{1234567890, "005924"},
		{2000000000, "279037"},
		{20000000000, "353130"},
	}

	for _, tc := range cases {
		code, err := hotp.DeriveTOTP(rfcSecret, tc.epoch, hotp.Period, hotp.Digits)
		require.NoError(t, err)
		assert.Equal(t, tc.code, code, "epoch %d", tc.epoch)
	}
}

func TestDeriveTOTP_MatchesReferenceImplementation(t *testing.T) {
	secret := []byte("quadkey cross-check secret")
	encoded := base32.StdEncoding.EncodeToString(secret)

	for _, epoch := range []int64{0, 1, 29, 30, 59, 60, 1700000000, 2524608000} {
		expected, err := totp.GenerateCodeCustom(encoded, time.Unix(epoch, 0), totp.ValidateOpts{
			Period:    hotp.Period,
			Digits:    otp.DigitsSix,
			Algorithm: otp.AlgorithmSHA1,
		})
		require.NoError(t, err)

		code, err := hotp.DeriveTOTP(secret, uint64(epoch), hotp.Period, hotp.Digits)
		require.NoError(t, err)
		assert.Equal(t, expected, code, "epoch %d", epoch)
	}
}

func TestDeriveTOTP_StepBoundaries(t *testing.T) {
	secret := []byte("boundary")

	a, err := hotp.DeriveTOTP(secret, 0, 30, 6)
	require.NoError(t, err)
	b, err := hotp.DeriveTOTP(secret, 29, 30, 6)
	require.NoError(t, err)
	c, err := hotp.DeriveTOTP(secret, 30, 30, 6)
	require.NoError(t, err)

	assert.Equal(t, a, b, "codes within one step must match")
	assert.NotEqual(t, b, c, "codes across a step boundary must differ")
}

func TestDerive_Preconditions(t *testing.T) {
	t.Run("empty secret", func(t *testing.T) {
		_, err := hotp.Derive(nil, 0, 6)
		assert.ErrorIs(t, err, hotp.ErrEmptySecret)
	})

	t.Run("digits out of range", func(t *testing.T) {
		_, err := hotp.Derive(rfcSecret, 0, 0)
		assert.ErrorIs(t, err, hotp.ErrDigits)

		_, err = hotp.Derive(rfcSecret, 0, 10)
		assert.ErrorIs(t, err, hotp.ErrDigits)
	})

	t.Run("zero period", func(t *testing.T) {
		_, err := hotp.DeriveTOTP(rfcSecret, 59, 0, 6)
		assert.ErrorIs(t, err, hotp.ErrPeriod)
	})
}

func TestDerive_ZeroPadding(t *testing.T) {
	// Epoch 1234567890 reduces to a value below 10^5, exercising the pad path.
	code, err := hotp.DeriveTOTP(rfcSecret, 1234567890, hotp.Period, hotp.Digits)
	require.NoError(t, err)
	assert.Len(t, code, 6)
	assert.Equal(t, "005924", code)
}
