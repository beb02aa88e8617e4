package cryptox

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns a salted bcrypt digest of plaintext.
func (s *Suite) HashPassword(plaintext string) ([]byte, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return digest, nil
}

// VerifyPassword reports whether plaintext matches digest. Malformed digests never match.
func (s *Suite) VerifyPassword(plaintext string, digest []byte) bool {
	if len(digest) == 0 {
		return false
	}
	return bcrypt.CompareHashAndPassword(digest, []byte(plaintext)) == nil
}
