package cryptox

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"fmt"

	"github.com/dtroode/lottery-server/internal/model"
)

const (
	publicKeyBlock  = "PUBLIC KEY"
	privateKeyBlock = "RSA PRIVATE KEY"
)

// GenerateKeyPair creates an RSA keypair and returns PEM-encoded public (PKIX) and private (PKCS#1) blobs.
func (s *Suite) GenerateKeyPair() ([]byte, []byte, error) {
	key, err := rsa.GenerateKey(rand.Reader, s.rsaBits)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate rsa key: %w", err)
	}

	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal public key: %w", err)
	}

	public := pem.EncodeToMemory(&pem.Block{Type: publicKeyBlock, Bytes: pubDER})
	private := pem.EncodeToMemory(&pem.Block{Type: privateKeyBlock, Bytes: x509.MarshalPKCS1PrivateKey(key)})

	return public, private, nil
}

// Encrypt seals plaintext with RSA-OAEP (SHA-256) under the PEM public key.
func (s *Suite) Encrypt(plaintext string, public []byte) ([]byte, error) {
	pub, err := parsePublicKey(public)
	if err != nil {
		return nil, err
	}

	ciphertext, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, pub, []byte(plaintext), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt: %w", err)
	}
	return ciphertext, nil
}

// Decrypt opens ciphertext with the PEM private key.
func (s *Suite) Decrypt(ciphertext, private []byte) (string, error) {
	block, _ := pem.Decode(private)
	if block == nil || block.Type != privateKeyBlock {
		return "", fmt.Errorf("%w: malformed private key", model.ErrDecryption)
	}
	key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrDecryption, err)
	}

	plaintext, err := rsa.DecryptOAEP(sha256.New(), nil, key, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrDecryption, err)
	}
	return string(plaintext), nil
}

func parsePublicKey(public []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(public)
	if block == nil || block.Type != publicKeyBlock {
		return nil, fmt.Errorf("malformed public key")
	}
	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}
	pub, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("public key is not rsa")
	}
	return pub, nil
}
