package models

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// BusinessClaims identify the caller and the business (tenant) it acts for.
type BusinessClaims struct {
	jwt.RegisteredClaims
	BusinessID  uuid.UUID `json:"business_id"`
	UserID      string    `json:"user_id"`
	Role        string    `json:"role"`
	Permissions []string  `json:"permissions"`
}

// HasPermission checks if the claims include a specific permission
func (c *BusinessClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}
