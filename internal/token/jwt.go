package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/lottery-server/internal/model"
)

// Claims represents JWT claims with token type and user ID.
type Claims struct {
	jwt.RegisteredClaims
	UserID    int64  `json:"user_id"`
	TokenType string `json:"typ"`
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey string
	ttl       time.Duration
	now       func() time.Time
}

// NewJWT creates a new JWT token manager with the provided secret key.
func NewJWT(secretKey string) *JWT {
	return &JWT{secretKey: secretKey, ttl: model.PendingSessionDuration, now: time.Now}
}

var _ model.TokenManager = (*JWT)(nil)

const typeEnrollment = "2fa_enrollment"

// GenerateEnrollmentToken creates a short-lived one-time 2FA setup token and returns its JTI.
func (j *JWT) GenerateEnrollmentToken(userID int64) (string, string, error) {
	now := j.now()
	jti := uuid.NewString()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   fmt.Sprint(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
		UserID:    userID,
		TokenType: typeEnrollment,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign enrollment token: %w", err)
	}

	return tokenString, jti, nil
}

// ParseEnrollmentToken validates the token and extracts the user ID and JTI.
func (j *JWT) ParseEnrollmentToken(tokenString string) (int64, string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	}, jwt.WithTimeFunc(j.now))
	if err != nil {
		return 0, "", fmt.Errorf("failed to parse enrollment token: %w", err)
	}
	if !token.Valid {
		return 0, "", fmt.Errorf("enrollment token is invalid")
	}
	if claims.TokenType != typeEnrollment {
		return 0, "", fmt.Errorf("token type mismatch: %s", claims.TokenType)
	}
	if claims.ID == "" || claims.UserID == 0 {
		return 0, "", fmt.Errorf("enrollment token is incomplete")
	}
	return claims.UserID, claims.ID, nil
}
