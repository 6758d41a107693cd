package authorize

import (
	"context"
	"errors"

	"github.com/Alijeyrad/libremedic_admin/pkg/reqctx"
)

var (
	ErrNoSubjectInContext = errors.New("no subject found in context")
)

// RoleFromContext returns the role of the session in ctx, or the default
// role for anonymous callers.
func RoleFromContext(ctx context.Context, cfg Config) (Role, error) {
	if s := reqctx.SessionFromContext(ctx); s != nil {
		if r, ok := ParseRole(s.UserType); ok {
			return r, nil
		}
	}
	if cfg.DefaultRole != "" {
		return cfg.DefaultRole, nil
	}
	return "", ErrNoSubjectInContext
}

// Check enforces object/action for the caller in ctx. It always succeeds
// when enforcement is disabled.
func Check(ctx context.Context, auth IAuthorization, cfg Config, object Resource, action Action) error {
	if !cfg.Enabled {
		return nil
	}
	role, err := RoleFromContext(ctx, cfg)
	if err != nil {
		return err
	}
	return auth.MustEnforce(ctx, role, object, action)
}
