package auth

// Config selects the verifier: a JWKS URL wins over the shared secret.
type Config struct {
	Secret   string
	JWKSURL  string
	Issuer   string
	Audience string
}
