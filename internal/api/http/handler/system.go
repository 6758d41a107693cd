package handler

import (
	"context"
	"encoding/json"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/libremedic_admin/internal/screen"
	"github.com/Alijeyrad/libremedic_admin/pkg/clinicapi"
)

// HealthChecker reports backend health. *clinicapi.Client satisfies it.
type HealthChecker interface {
	Health(ctx context.Context) clinicapi.Envelope[json.RawMessage]
	BaseURL() string
}

type SystemHandler struct {
	backend HealthChecker
}

func NewSystemHandler(backend HealthChecker) *SystemHandler {
	return &SystemHandler{backend: backend}
}

type BackendHealth struct {
	Status  string          `json:"status"`
	BaseURL string          `json:"baseUrl"`
	Detail  json.RawMessage `json:"detail,omitempty"`
}

// GET /admin/backend/health
func (h *SystemHandler) BackendHealth(c fiber.Ctx) error {
	env := h.backend.Health(c.Context())
	if !env.Success {
		return badGateway(c, screen.RequestMessage(env.Error, "backend no disponible"), BackendHealth{
			Status:  "down",
			BaseURL: h.backend.BaseURL(),
		}, nil)
	}
	return ok(c, BackendHealth{Status: "up", BaseURL: h.backend.BaseURL(), Detail: env.Data}, nil)
}
