package auth

import "errors"

var (
	ErrMissingToken    = errors.New("authorization token required")
	ErrInvalidToken    = errors.New("invalid token")
	ErrExpiredToken    = errors.New("token has expired")
	ErrMissingSubject  = errors.New("token has no subject id")
	ErrNoAuthenticator = errors.New("no authenticator configured")
)
