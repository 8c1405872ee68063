package utils

import (
	"testing"
	"time"

	"salonpay/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	businessID := uuid.New()
	token, err := GenerateToken(&models.BusinessClaims{
		BusinessID: businessID,
		UserID:     "user-1",
		Role:       models.RoleStaff,
	}, "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, businessID, claims.BusinessID)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, tokenIssuer, claims.Issuer)
	assert.True(t, claims.HasPermission(models.PermissionPaymentWrite))
	assert.False(t, claims.HasPermission(models.PermissionSettingsWrite))
}

func TestParseToken_Rejects(t *testing.T) {
	valid, err := GenerateToken(&models.BusinessClaims{BusinessID: uuid.New(), Role: models.RoleOwner}, "secret", time.Hour)
	require.NoError(t, err)
	expired, err := GenerateToken(&models.BusinessClaims{BusinessID: uuid.New(), Role: models.RoleOwner}, "secret", -time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{name: "wrong secret", token: valid, secret: "other"},
		{name: "expired", token: expired, secret: "secret"},
		{name: "garbage", token: "not-a-token", secret: "secret"},
		{name: "missing secret", token: valid, secret: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseToken(tt.token, tt.secret)
			assert.Error(t, err)
		})
	}
}

func TestParseToken_RejectsUnsignedAlgorithm(t *testing.T) {
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, models.BusinessClaims{BusinessID: uuid.New()})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseToken(token, "secret")
	assert.Error(t, err)
}

func TestGenerateToken_MissingSecret(t *testing.T) {
	_, err := GenerateToken(&models.BusinessClaims{}, "", time.Hour)
	assert.ErrorIs(t, err, ErrMissingSecret)
}
