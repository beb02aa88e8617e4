package cryptox

import (
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/lottery-server/internal/model"
)

func newTestSuite(t *testing.T) *Suite {
	t.Helper()
	s, err := New(WithBcryptCost(bcrypt.MinCost), WithRSABits(MinRSABits), WithIssuer("Test Lottery"))
	require.NoError(t, err)
	return s
}

func TestNew_RejectsWeakParameters(t *testing.T) {
	_, err := New(WithRSABits(512))
	require.Error(t, err)

	_, err = New(WithBcryptCost(bcrypt.MaxCost + 1))
	require.Error(t, err)

	s, err := New()
	require.NoError(t, err)
	assert.Equal(t, DefaultRSABits, s.rsaBits)
	assert.Equal(t, DefaultIssuer, s.issuer)
}

func TestPassword_HashAndVerify(t *testing.T) {
	s := newTestSuite(t)

	d1, err := s.HashPassword("Secret1!")
	require.NoError(t, err)
	d2, err := s.HashPassword("Secret1!")
	require.NoError(t, err)

	assert.NotEqual(t, d1, d2, "digests must be salted")
	assert.True(t, s.VerifyPassword("Secret1!", d1))
	assert.True(t, s.VerifyPassword("Secret1!", d2))
	assert.False(t, s.VerifyPassword("secret1!", d1))
	assert.False(t, s.VerifyPassword("Secret1!", nil))
	assert.False(t, s.VerifyPassword("Secret1!", []byte("not-a-digest")))
}

func TestKeys_EncryptDecryptRoundtrip(t *testing.T) {
	s := newTestSuite(t)

	pub, priv, err := s.GenerateKeyPair()
	require.NoError(t, err)
	require.NotEmpty(t, pub)
	require.NotEmpty(t, priv)

	ct, err := s.Encrypt("3 12 27 40 55 59", pub)
	require.NoError(t, err)
	assert.NotContains(t, string(ct), "3 12 27")

	pt, err := s.Decrypt(ct, priv)
	require.NoError(t, err)
	assert.Equal(t, "3 12 27 40 55 59", pt)
}

func TestKeys_DecryptWithWrongKey(t *testing.T) {
	s := newTestSuite(t)

	pubA, _, err := s.GenerateKeyPair()
	require.NoError(t, err)
	_, privB, err := s.GenerateKeyPair()
	require.NoError(t, err)

	ct, err := s.Encrypt("1 2 3 4 5 6", pubA)
	require.NoError(t, err)

	_, err = s.Decrypt(ct, privB)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrDecryption))
}

func TestKeys_MalformedInput(t *testing.T) {
	s := newTestSuite(t)

	_, err := s.Encrypt("1 2 3 4 5 6", []byte("garbage"))
	assert.Error(t, err)

	_, err = s.Decrypt([]byte("ct"), []byte("garbage"))
	assert.ErrorIs(t, err, model.ErrDecryption)
}

func TestTOTP_SecretShape(t *testing.T) {
	s := newTestSuite(t)

	secret, err := s.NewTOTPSecret()
	require.NoError(t, err)
	assert.Len(t, secret, 32)
	assert.Equal(t, strings.ToUpper(secret), secret)

	other, err := s.NewTOTPSecret()
	require.NoError(t, err)
	assert.NotEqual(t, secret, other)
}

func TestTOTP_ProvisioningURI(t *testing.T) {
	s := newTestSuite(t)

	secret, err := s.NewTOTPSecret()
	require.NoError(t, err)

	uri, err := s.ProvisioningURI(secret, "alice@example.com")
	require.NoError(t, err)

	u, err := url.Parse(uri)
	require.NoError(t, err)
	assert.Equal(t, "otpauth", u.Scheme)
	assert.Equal(t, "totp", u.Host)
	assert.Equal(t, secret, u.Query().Get("secret"))
	assert.Equal(t, "Test Lottery", u.Query().Get("issuer"))
	assert.Contains(t, u.Path, "alice@example.com")

	_, err = s.ProvisioningURI("!!", "alice@example.com")
	assert.Error(t, err)
}

func TestTOTP_VerifyWithSkew(t *testing.T) {
	s := newTestSuite(t)

	secret, err := s.NewTOTPSecret()
	require.NoError(t, err)

	now := time.Date(2026, 1, 1, 12, 0, 15, 0, time.UTC)
	codeAt := func(at time.Time) string {
		code, err := totp.GenerateCodeCustom(secret, at, totpOpts)
		require.NoError(t, err)
		return code
	}

	tests := []struct {
		name string
		code string
		want bool
	}{
		{name: "current step", code: codeAt(now), want: true},
		{name: "previous step", code: codeAt(now.Add(-30 * time.Second)), want: true},
		{name: "next step", code: codeAt(now.Add(30 * time.Second)), want: true},
		{name: "three steps old", code: codeAt(now.Add(-90 * time.Second)), want: false},
		{name: "empty", code: "", want: false},
		{name: "not digits", code: "abcdef", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.verifyTOTPAt(secret, tt.code, now))
		})
	}
}

func TestDrawNumbers(t *testing.T) {
	s := newTestSuite(t)

	for i := 0; i < 200; i++ {
		values, err := s.DrawNumbers(model.NumbersCount, model.NumbersMax)
		require.NoError(t, err)
		require.Len(t, values, model.NumbersCount)

		seen := map[int]bool{}
		for _, v := range values {
			require.GreaterOrEqual(t, v, model.NumbersMin)
			require.LessOrEqual(t, v, model.NumbersMax)
			require.False(t, seen[v], "duplicate %d", v)
			seen[v] = true
		}

		_, err = model.NewNumbers(values)
		require.NoError(t, err)
	}

	_, err := s.DrawNumbers(7, 6)
	assert.Error(t, err)
}
