package model

// PasswordHasher produces and checks salted adaptive password digests.
type PasswordHasher interface {
	HashPassword(plaintext string) ([]byte, error)
	VerifyPassword(plaintext string, digest []byte) bool
}

// KeyCipher generates keypairs and seals short payloads with them.
type KeyCipher interface {
	GenerateKeyPair() (public, private []byte, err error)
	Encrypt(plaintext string, public []byte) ([]byte, error)
	// Decrypt returns an error wrapping ErrDecryption on key mismatch or malformed input.
	Decrypt(ciphertext, private []byte) (string, error)
}

// OTP issues and checks time-based one-time passwords.
type OTP interface {
	NewTOTPSecret() (string, error)
	ProvisioningURI(secret, account string) (string, error)
	VerifyTOTP(secret, code string) bool
}

// NumberGenerator draws count distinct values from 1..max.
type NumberGenerator interface {
	DrawNumbers(count, max int) ([]int, error)
}

// Crypto is the full crypto utility handed to services.
type Crypto interface {
	PasswordHasher
	KeyCipher
	OTP
}
