package services

import (
	"fmt"
	"strconv"
	"time"

	"intern-portal/config"
	apperrors "intern-portal/errors"

	"github.com/golang-jwt/jwt/v5"
)

// tokenTTL is how long an issued admin token stays valid
const tokenTTL = 24 * time.Hour

// IssueToken signs a bearer token carrying the admin id, valid for 24 hours.
func IssueToken(adminID int64) (string, error) {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		return "", apperrors.E(apperrors.Internal, "JWT_SECRET not configured")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(adminID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("error signing token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates a bearer token and returns the admin id it carries.
// Invalid or expired tokens come back as Forbidden.
func VerifyToken(tokenString string) (int64, error) {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		return 0, apperrors.E(apperrors.Internal, "JWT_SECRET not configured")
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, apperrors.NewForbiddenError("invalid or expired token")
	}

	adminID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, apperrors.NewForbiddenError("invalid token subject")
	}
	return adminID, nil
}
