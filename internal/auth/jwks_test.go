package auth

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MicahParks/jwkset"
	"github.com/golang-jwt/jwt/v5"
)

type staticKeyfunc struct {
	key any
}

func (s staticKeyfunc) Keyfunc(_ *jwt.Token) (any, error) {
	return s.key, nil
}

func (s staticKeyfunc) KeyfuncCtx(_ context.Context) jwt.Keyfunc {
	return s.Keyfunc
}

func (s staticKeyfunc) Storage() jwkset.Storage {
	return nil
}

func (s staticKeyfunc) VerificationKeySet(_ context.Context) (jwt.VerificationKeySet, error) {
	return jwt.VerificationKeySet{}, nil
}

func newTestKeyPair(t *testing.T) (ed25519.PublicKey, ed25519.PrivateKey) {
	t.Helper()

	public, private, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return public, private
}

func TestJWKSAuthenticatorRejectsWrongIssuer(t *testing.T) {
	public, private := newTestKeyPair(t)
	authenticator := newJWKSAuthenticator(staticKeyfunc{key: public}, Config{Issuer: "http://idp.local/realms/blog"})

	claims := makeClaims("u1", time.Hour)
	claims["iss"] = "http://wrong-issuer/realms/blog"
	token := signToken(t, jwt.SigningMethodEdDSA, claims, private)

	_, err := authenticator.Authenticate(context.Background(), token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWKSAuthenticatorRejectsHMACTokens(t *testing.T) {
	public, _ := newTestKeyPair(t)
	authenticator := newJWKSAuthenticator(staticKeyfunc{key: public}, Config{})

	token := signToken(t, jwt.SigningMethodHS256, makeClaims("u1", time.Hour), []byte(testSecret))
	_, err := authenticator.Authenticate(context.Background(), token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWKSAuthenticatorReturnsPrincipal(t *testing.T) {
	public, private := newTestKeyPair(t)
	authenticator := newJWKSAuthenticator(staticKeyfunc{key: public}, Config{
		Issuer:   "http://idp.local/realms/blog",
		Audience: "blog-api",
	})

	claims := makeClaims("u1", time.Hour)
	claims["iss"] = "http://idp.local/realms/blog"
	claims["aud"] = []string{"blog-api"}
	token := signToken(t, jwt.SigningMethodEdDSA, claims, private)

	principal, err := authenticator.Authenticate(context.Background(), token)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if principal.UserID != "u1" {
		t.Fatalf("unexpected subject: %v", principal.UserID)
	}
	if principal.Claims.Issuer != "http://idp.local/realms/blog" {
		t.Fatalf("unexpected issuer: %v", principal.Claims.Issuer)
	}
}

func TestNewJWKSAuthenticatorFailsWhenJWKSUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/certs" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("no jwks"))
	}))
	defer server.Close()

	_, err := New(context.Background(), Config{
		JWKSURL:  server.URL + "/certs",
		Issuer:   "http://idp.local/realms/blog",
		Audience: "blog-api",
	})
	if err == nil {
		t.Fatal("expected error when jwks endpoint is unavailable")
	}
	if !strings.Contains(err.Error(), "jwks endpoint returned 502") {
		t.Fatalf("unexpected error: %v", err)
	}
}
