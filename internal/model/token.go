package model

// TokenManager generates and validates short-lived 2FA enrollment tokens.
type TokenManager interface {
	GenerateEnrollmentToken(userID int64) (token string, jti string, err error)
	ParseEnrollmentToken(token string) (userID int64, jti string, err error)
}
