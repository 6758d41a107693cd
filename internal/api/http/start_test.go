package http

import (
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/Alijeyrad/libremedic_admin/config"
	"github.com/Alijeyrad/libremedic_admin/internal/api/http/router"
	"github.com/Alijeyrad/libremedic_admin/internal/app"
	"github.com/Alijeyrad/libremedic_admin/pkg/clinicapi"
)

// TestServer_RunsWithoutRedis builds the full fx graph with redis.addr
// blank: the limiter counts in memory and remembered logins live in the
// in-process session store.
func TestServer_RunsWithoutRedis(t *testing.T) {
	backend := &clinicBackend{}
	mux := nethttp.NewServeMux()
	mux.Handle("/", backend.handler())
	mux.HandleFunc("POST /auth/login", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"data": clinicapi.LoginResult{Token: "opaque-token"}})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		API: config.APIConfig{BaseURL: srv.URL},
		Server: config.ServerConfig{
			RateLimit: config.RateLimit{Enabled: true, RequestsPerWindow: 100, WindowSeconds: 60},
		},
		Session:       config.SessionConfig{CookieName: cookieName, TTLMinutes: 60},
		Authorization: config.AuthorizationConfig{Enabled: true, DefaultRole: "admin"},
	}
	require.False(t, cfg.Redis.Enabled())

	var fiberApp *fiber.App
	fxtest.New(t,
		fx.Supply(cfg),
		app.InfraModule,
		app.ScreenModule,
		router.Module,
		Module,
		fx.Populate(&fiberApp),
		fx.NopLogger,
	)
	require.NotNil(t, fiberApp)

	res, err := fiberApp.Test(httptest.NewRequest(nethttp.MethodGet, "/admin/patients", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
	assert.EqualValues(t, 1, backend.listPatients.Load())

	login := httptest.NewRequest(nethttp.MethodPost, "/admin/login",
		strings.NewReader(`{"email":"pilar@example.com","password":"secret","userType":"patient","remember":true}`))
	login.Header.Set("Content-Type", "application/json")
	res, err = fiberApp.Test(login)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	var sid *nethttp.Cookie
	for _, c := range res.Cookies() {
		if c.Name == cookieName {
			sid = c
		}
	}
	require.NotNil(t, sid, "remembered login sets the session cookie")

	// The stored session makes the caller a patient, who may not list patients.
	req := httptest.NewRequest(nethttp.MethodGet, "/admin/patients", nil)
	req.AddCookie(&nethttp.Cookie{Name: cookieName, Value: sid.Value})
	res, err = fiberApp.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, res.StatusCode)
}
