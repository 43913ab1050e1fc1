package configs

// Auth configures verification of the bearer token issued by the identity
// service. When Secret is empty the token signature is not checked and only
// its claims and expiry are read; this is meant for local development
// against a stub backend.
type Auth struct {
	Secret string `env:"JWT_SECRET"`
	Issuer string `env:"JWT_ISSUER"`
	// RoleClaim names the claim that carries the role tag.
	RoleClaim string `env:"ROLE_CLAIM" envDefault:"role"`
}
