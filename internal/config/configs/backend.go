package configs

import (
	"net/url"
	"time"
)

// Backend locates the upstream REST services. Every resource client is
// bound to BaseURL joined with its resource path.
type Backend struct {
	BaseURL url.URL       `env:"BASE_URL" envDefault:"http://localhost:5000/api"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"15s"`
}
