package configs

import "time"

// Session configures the cookie that identifies a browser session in the
// preference store.
type Session struct {
	CookieName string        `env:"COOKIE_NAME" envDefault:"mesa_session"`
	MaxAge     time.Duration `env:"MAX_AGE" envDefault:"720h"`
	Secure     bool          `env:"SECURE" envDefault:"true"`
}
