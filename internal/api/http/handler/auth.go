package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/libremedic_admin/config"
	"github.com/Alijeyrad/libremedic_admin/internal/screen"
	"github.com/Alijeyrad/libremedic_admin/internal/session"
)

type AuthHandler struct {
	svc    session.Service
	cookie config.SessionConfig
}

func NewAuthHandler(svc session.Service, cfg config.SessionConfig) *AuthHandler {
	return &AuthHandler{svc: svc, cookie: cfg}
}

// POST /admin/login
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req session.LoginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "cuerpo de la solicitud inválido")
	}

	notes := &screen.Collector{}
	res, err := h.svc.Login(c.Context(), req, notes)
	if err != nil {
		return mapAuthError(c, err, notes)
	}

	if res.SessionID != "" {
		c.Cookie(&fiber.Cookie{
			Name:     h.cookie.CookieName,
			Value:    res.SessionID,
			Path:     "/",
			Expires:  res.ExpiresAt,
			HTTPOnly: true,
			Secure:   h.cookie.Secure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}

	return ok(c, res, notes)
}

// POST /admin/logout
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	sid := c.Cookies(h.cookie.CookieName)

	notes := &screen.Collector{}
	err := h.svc.Logout(c.Context(), sid, notes)
	if sid != "" {
		c.Cookie(&fiber.Cookie{
			Name:     h.cookie.CookieName,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			HTTPOnly: true,
			Secure:   h.cookie.Secure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
	if err != nil {
		return mapAuthError(c, err, notes)
	}

	return ok(c, fiber.Map{"redirect": "/login"}, notes)
}

// ---------------------------------------------------------------------------
// Error mapping
// ---------------------------------------------------------------------------

func mapAuthError(c fiber.Ctx, err error, notes *screen.Collector) error {
	switch {
	case errors.Is(err, session.ErrMissingEmail):
		return unprocessable(c, screen.MsgFixErrors, map[string]string{"email": "El email es obligatorio"}, notes)
	case errors.Is(err, session.ErrLoginFailed):
		return fail(c, fiber.StatusUnauthorized, lastMessage(notes, err), notes)
	case errors.Is(err, session.ErrLogoutFailed):
		return badGateway(c, lastMessage(notes, err), nil, notes)
	default:
		return internalError(c)
	}
}
