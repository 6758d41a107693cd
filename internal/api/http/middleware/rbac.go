package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/libremedic_admin/pkg/authorize"
)

// RequirePermission checks that the caller's role may perform action on
// resource. Nothing is checked while authorization is disabled.
func RequirePermission(auth authorize.IAuthorization, cfg authorize.Config, resource authorize.Resource, action authorize.Action) fiber.Handler {
	return func(c fiber.Ctx) error {
		err := authorize.Check(c.Context(), auth, cfg, resource, action)
		switch {
		case err == nil:
			return c.Next()
		case errors.Is(err, authorize.ErrNoSubjectInContext):
			return fiber.ErrUnauthorized
		case errors.Is(err, authorize.ErrForbidden):
			return fiber.ErrForbidden
		default:
			return err
		}
	}
}
