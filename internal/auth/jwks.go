package auth

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

var asymmetricMethods = []string{
	jwt.SigningMethodRS256.Alg(),
	jwt.SigningMethodRS384.Alg(),
	jwt.SigningMethodRS512.Alg(),
	jwt.SigningMethodPS256.Alg(),
	jwt.SigningMethodES256.Alg(),
	jwt.SigningMethodES384.Alg(),
	jwt.SigningMethodEdDSA.Alg(),
}

type jwksAuthenticator struct {
	jwks   keyfunc.Keyfunc
	parser *jwt.Parser
}

// NewJWKSAuthenticator verifies tokens against keys published at cfg.JWKSURL.
// The endpoint is probed once so a bad URL fails startup instead of every request.
func NewJWKSAuthenticator(ctx context.Context, cfg Config) (Authenticator, error) {
	if cfg.JWKSURL == "" {
		return nil, fmt.Errorf("jwks url is empty")
	}

	if err := probeJWKS(ctx, cfg.JWKSURL); err != nil {
		return nil, err
	}

	kf, err := keyfunc.NewDefaultCtx(ctx, []string{cfg.JWKSURL})
	if err != nil {
		return nil, fmt.Errorf("fetch jwks from %s: %w", cfg.JWKSURL, err)
	}

	return newJWKSAuthenticator(kf, cfg), nil
}

func newJWKSAuthenticator(kf keyfunc.Keyfunc, cfg Config) *jwksAuthenticator {
	return &jwksAuthenticator{
		jwks:   kf,
		parser: jwt.NewParser(parserOptions(cfg, asymmetricMethods)...),
	}
}

func (a *jwksAuthenticator) Authenticate(ctx context.Context, bearerToken string) (Principal, error) {
	return verify(a.parser, bearerToken, a.jwks.KeyfuncCtx(ctx))
}

func probeJWKS(ctx context.Context, jwksURL string) error {
	probeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, jwksURL, nil)
	if err != nil {
		return fmt.Errorf("build jwks request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch jwks from %s: %w", jwksURL, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("jwks endpoint returned %d", resp.StatusCode)
	}
	return nil
}
