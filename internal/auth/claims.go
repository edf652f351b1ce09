package auth

import "github.com/golang-jwt/jwt/v5"

// Claims is the token payload. The subject travels in the custom "id" claim.
type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}
