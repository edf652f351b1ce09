package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const leeway = 5 * time.Second

type Authenticator interface {
	Authenticate(ctx context.Context, bearerToken string) (Principal, error)
}

func New(ctx context.Context, cfg Config) (Authenticator, error) {
	if cfg.JWKSURL != "" {
		return NewJWKSAuthenticator(ctx, cfg)
	}
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret is empty and no jwks url configured")
	}
	return NewSecretAuthenticator(cfg), nil
}

func parserOptions(cfg Config, methods []string) []jwt.ParserOption {
	opts := []jwt.ParserOption{
		jwt.WithLeeway(leeway),
		jwt.WithValidMethods(methods),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}
	return opts
}

func verify(parser *jwt.Parser, bearerToken string, keyFunc jwt.Keyfunc) (Principal, error) {
	if bearerToken == "" {
		return Principal{}, ErrMissingToken
	}

	claims := &Claims{}
	token, err := parser.ParseWithClaims(bearerToken, claims, keyFunc)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Principal{}, ErrExpiredToken
		}
		return Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return Principal{}, ErrInvalidToken
	}
	if claims.UserID == "" {
		return Principal{}, ErrMissingSubject
	}

	return Principal{
		UserID: claims.UserID,
		Claims: *claims,
	}, nil
}
