package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ResetClaims are the claims carried by a password-reset token.
type ResetClaims struct {
	jwt.RegisteredClaims

	// Email is the normalized address the token was issued for.
	Email string `json:"email"`
}

// GenerateResetToken creates a signed HMAC-SHA256 JWT for a password reset.
//
// The token includes the following claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the user ID
//   - ID        (jti): a unique token identifier
//   - IssuedAt  (iat): now
//   - ExpiresAt (exp): now plus ttl
//   - email: the address the token was requested for
//
// issuer, tokenID, ttl and signKey are required.
func GenerateResetToken(issuer, userID, email, tokenID string, now time.Time, ttl time.Duration, signKey string) (string, error) {
	if issuer == "" || tokenID == "" || ttl <= 0 || signKey == "" {
		return "", errors.New("invalid params for generating reset token")
	}

	claims := &ResetClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ID:        tokenID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Email: email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("error occurred during singing reset token: %w", err)
	}

	return signed, nil
}

// ParseResetToken verifies the signature, issuer and expiry of a reset token
// at the instant now and returns its claims.
func ParseResetToken(tokenString, signKey, issuer string, now time.Time) (*ResetClaims, error) {
	claims := &ResetClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return nil, fmt.Errorf("error occurred validating and parsing reset token: %w", err)
	}

	return claims, nil
}
