package configs

import "strings"

// Preferences selects where session preferences (token, language, theme)
// are persisted. Driver is one of "postgres", "sqlite" or "memory".
type Preferences struct {
	Driver string `env:"DRIVER" envDefault:"postgres"`
	// SQLitePath is the database file used by the sqlite driver.
	SQLitePath string `env:"SQLITE_PATH" envDefault:"mesa-console.db"`
}

// Normalized returns the lower-cased driver, falling back to "memory" for
// unknown values.
func (p Preferences) Normalized() string {
	switch d := strings.ToLower(strings.TrimSpace(p.Driver)); d {
	case "postgres", "sqlite", "memory":
		return d
	default:
		return "memory"
	}
}
