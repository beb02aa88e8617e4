// Package cryptox bundles password hashing, per-identity RSA keypairs,
// TOTP second factors and secure number drawing.
package cryptox

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/lottery-server/internal/model"
)

const (
	// MinRSABits is the smallest modulus that leaves room for a draw payload under OAEP-SHA256.
	MinRSABits = 1024
	// DefaultRSABits is used when no size is configured.
	DefaultRSABits = 2048
	// DefaultIssuer labels provisioning URIs.
	DefaultIssuer = "Lottery"
)

var (
	_ model.Crypto          = (*Suite)(nil)
	_ model.NumberGenerator = (*Suite)(nil)
)

// Suite is the crypto utility passed to services.
type Suite struct {
	bcryptCost int
	rsaBits    int
	issuer     string
}

// Option configures a Suite.
type Option func(*Suite)

// WithBcryptCost sets the bcrypt work factor.
func WithBcryptCost(cost int) Option {
	return func(s *Suite) { s.bcryptCost = cost }
}

// WithRSABits sets the modulus size for new keypairs.
func WithRSABits(bits int) Option {
	return func(s *Suite) { s.rsaBits = bits }
}

// WithIssuer sets the issuer shown by authenticator apps.
func WithIssuer(issuer string) Option {
	return func(s *Suite) { s.issuer = issuer }
}

// New creates a Suite. It rejects bcrypt costs and key sizes outside the supported range.
func New(opts ...Option) (*Suite, error) {
	s := &Suite{
		bcryptCost: bcrypt.DefaultCost,
		rsaBits:    DefaultRSABits,
		issuer:     DefaultIssuer,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.bcryptCost < bcrypt.MinCost || s.bcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d outside %d..%d", s.bcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	if s.rsaBits < MinRSABits {
		return nil, fmt.Errorf("rsa modulus %d is below the %d-bit minimum", s.rsaBits, MinRSABits)
	}
	if s.issuer == "" {
		s.issuer = DefaultIssuer
	}

	return s, nil
}
