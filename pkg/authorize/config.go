package authorize

import "github.com/Alijeyrad/libremedic_admin/config"

// Config holds configuration for screen access checks.
type Config struct {
	// Enabled turns enforcement on. When off every screen is open, as in
	// the original front-end.
	Enabled bool

	// DefaultRole applies to callers without a session. Empty means
	// anonymous callers are rejected.
	DefaultRole Role
}

func DefaultConfig() Config {
	return Config{
		Enabled:     false,
		DefaultRole: RoleAdmin,
	}
}

// FromCentralConfig converts central config.AuthorizationConfig to package Config
func FromCentralConfig(c config.AuthorizationConfig) Config {
	cfg := Config{Enabled: c.Enabled}
	if r, ok := ParseRole(c.DefaultRole); ok {
		cfg.DefaultRole = r
	}
	return cfg
}
