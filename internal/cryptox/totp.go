package cryptox

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const (
	totpSecretBytes = 20
	totpPeriod      = 30
	totpSkew        = 1
)

var secretEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

var totpOpts = totp.ValidateOpts{
	Period:    totpPeriod,
	Skew:      totpSkew,
	Digits:    otp.DigitsSix,
	Algorithm: otp.AlgorithmSHA1,
}

// NewTOTPSecret returns a random 32-character base32 secret.
func (s *Suite) NewTOTPSecret() (string, error) {
	raw := make([]byte, totpSecretBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to read random secret: %w", err)
	}
	return secretEncoding.EncodeToString(raw), nil
}

// ProvisioningURI returns the otpauth URI authenticator apps enroll from.
func (s *Suite) ProvisioningURI(secret, account string) (string, error) {
	raw, err := secretEncoding.DecodeString(strings.ToUpper(secret))
	if err != nil || len(raw) == 0 {
		return "", fmt.Errorf("malformed totp secret")
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.issuer,
		AccountName: account,
		Period:      totpPeriod,
		Secret:      raw,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", fmt.Errorf("failed to build provisioning uri: %w", err)
	}

	return key.URL(), nil
}

// VerifyTOTP checks code against the current 30-second step, allowing one step of drift each way.
func (s *Suite) VerifyTOTP(secret, code string) bool {
	return s.verifyTOTPAt(secret, code, time.Now().UTC())
}

func (s *Suite) verifyTOTPAt(secret, code string, at time.Time) bool {
	if secret == "" || code == "" {
		return false
	}
	ok, err := totp.ValidateCustom(strings.TrimSpace(code), secret, at, totpOpts)
	return err == nil && ok
}
