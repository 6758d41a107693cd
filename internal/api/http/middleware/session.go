package middleware

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/libremedic_admin/internal/session"
	"github.com/Alijeyrad/libremedic_admin/pkg/reqctx"
)

// LoadSession resolves the session cookie, when present, into a
// reqctx.Session on c.Context(). Requests without a valid cookie continue
// anonymously.
func LoadSession(svc session.Service, cookieName string) fiber.Handler {
	return func(c fiber.Ctx) error {
		sid := c.Cookies(cookieName)
		if sid == "" || svc == nil {
			return c.Next()
		}

		s, err := svc.Current(c.Context(), sid)
		switch {
		case err == nil:
			c.SetContext(reqctx.WithSession(c.Context(), s))
		case errors.Is(err, session.ErrSessionNotFound), errors.Is(err, session.ErrInvalidSession):
			c.ClearCookie(cookieName)
		default:
			slog.WarnContext(c.Context(), "session lookup failed", "error", err)
		}

		return c.Next()
	}
}
