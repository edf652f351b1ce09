package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var hmacMethods = []string{
	jwt.SigningMethodHS256.Alg(),
	jwt.SigningMethodHS384.Alg(),
	jwt.SigningMethodHS512.Alg(),
}

type secretAuthenticator struct {
	secret []byte
	parser *jwt.Parser
}

// NewSecretAuthenticator verifies HMAC-signed tokens against a shared secret.
func NewSecretAuthenticator(cfg Config) Authenticator {
	return &secretAuthenticator{
		secret: []byte(cfg.Secret),
		parser: jwt.NewParser(parserOptions(cfg, hmacMethods)...),
	}
}

func (a *secretAuthenticator) Authenticate(_ context.Context, bearerToken string) (Principal, error) {
	return verify(a.parser, bearerToken, a.keyfunc)
}

func (a *secretAuthenticator) keyfunc(_ *jwt.Token) (any, error) {
	return a.secret, nil
}

// SignToken mints an HS256 token carrying userID in the "id" claim.
func SignToken(secret string, userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
