package utils

import (
	"errors"
	"time"

	"salonpay/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "salonpay-api"

var (
	ErrMissingSecret = errors.New("jwt secret not configured")
	ErrInvalidToken  = errors.New("invalid token claims")
)

// GenerateToken signs an access token for the given business claims.
func GenerateToken(claims *models.BusinessClaims, secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}

	now := time.Now()
	accessClaims := models.BusinessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   claims.UserID,
		},
		BusinessID:  claims.BusinessID,
		UserID:      claims.UserID,
		Role:        claims.Role,
		Permissions: claims.Permissions,
	}
	if len(accessClaims.Permissions) == 0 {
		accessClaims.Permissions = models.GetDefaultPermissions(claims.Role)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims)
	return token.SignedString([]byte(secret))
}

// ParseToken parses and validates a JWT token string.
func ParseToken(tokenStr, secret string) (*models.BusinessClaims, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}

	token, err := jwt.ParseWithClaims(tokenStr, &models.BusinessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*models.BusinessClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
