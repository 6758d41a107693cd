package router

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/Alijeyrad/libremedic_admin/config"
	"github.com/Alijeyrad/libremedic_admin/internal/api/http/handler"
	"github.com/Alijeyrad/libremedic_admin/internal/api/http/middleware"
	"github.com/Alijeyrad/libremedic_admin/internal/screen"
	"github.com/Alijeyrad/libremedic_admin/internal/session"
	"github.com/Alijeyrad/libremedic_admin/pkg/authorize"
	"github.com/Alijeyrad/libremedic_admin/pkg/clinicapi"
)

// Module provides the Router to the fx graph.
var Module = fx.Module("router", fx.Provide(NewRouter))

type Params struct {
	fx.In

	Cfg      *config.Config
	Redis    *redis.Client `optional:"true"`
	Auth     authorize.IAuthorization
	Client   *clinicapi.Client
	Sessions session.Service
}

type Router struct {
	p Params
}

func NewRouter(p Params) *Router {
	return &Router{p: p}
}

func (r *Router) Register(app *fiber.App) {
	// 1. Health & Metrics
	r.registerSystemRoutes(app)

	// 2. Middlewares
	authzCfg := authorize.FromCentralConfig(r.p.Cfg.Authorization)
	requirePerm := func(res authorize.Resource, act authorize.Action) fiber.Handler {
		return middleware.RequirePermission(r.p.Auth, authzCfg, res, act)
	}

	admin := app.Group("/admin", middleware.LoadSession(r.p.Sessions, r.p.Cfg.Session.CookieName))

	// 3. Auth and backend
	authH := handler.NewAuthHandler(r.p.Sessions, r.p.Cfg.Session)
	admin.Post("/login", authH.Login)
	admin.Post("/logout", authH.Logout)

	systemH := handler.NewSystemHandler(r.p.Client)
	admin.Get("/backend/health", requirePerm(authorize.ResourceBackend, authorize.ActionRead), systemH.BackendHealth)

	// 4. Screens
	c := r.p.Client
	choices := func(ctx context.Context) screen.Choices {
		return screen.LoadChoices(ctx, c.Patients(), c.Users())
	}

	registerResource(admin, handler.NewResourceHandler(screen.Patients, c.Patients(), nil), requirePerm)
	registerResource(admin, handler.NewResourceHandler(screen.Doctors, c.Users(), nil), requirePerm)
	registerResource(admin, handler.NewResourceHandler(screen.Diagnoses, c.Diagnoses(), choices), requirePerm)
	registerResource(admin, handler.NewResourceHandler(screen.Prescriptions, c.Prescriptions(), choices), requirePerm)
	registerResource(admin, handler.NewResourceHandler(screen.MedicalCenters, c.MedicalCenters(), nil), requirePerm)
	registerResource(admin, handler.NewResourceHandler(screen.Appointments, c.Appointments(), choices), requirePerm)
}

// registerResource mounts the screens of one resource under /<name>. The
// authorization object is the route segment.
func registerResource[T, F any](
	api fiber.Router,
	h *handler.ResourceHandler[T, F],
	requirePerm func(authorize.Resource, authorize.Action) fiber.Handler,
) {
	res := authorize.Resource(h.Kind().Name)
	g := api.Group(h.Kind().ListPath())

	g.Get("/", requirePerm(res, authorize.ActionRead), h.List)
	g.Post("/", requirePerm(res, authorize.ActionCreate), h.Create)
	g.Get("/new", requirePerm(res, authorize.ActionCreate), h.New)

	item := g.Group("/:id")
	item.Get("/", requirePerm(res, authorize.ActionRead), h.Detail)
	item.Get("/edit", requirePerm(res, authorize.ActionUpdate), h.Edit)
	item.Put("/", requirePerm(res, authorize.ActionUpdate), h.Update)
	item.Delete("/", requirePerm(res, authorize.ActionDelete), h.Delete)
}

func (r *Router) registerSystemRoutes(app *fiber.App) {
	app.Get(healthcheck.LivenessEndpoint, healthcheck.New())
	app.Get(healthcheck.ReadinessEndpoint, healthcheck.New(healthcheck.Config{
		Probe: func(c fiber.Ctx) bool {
			if r.p.Redis == nil {
				return true
			}
			return r.p.Redis.Ping(c.Context()).Err() == nil
		},
	}))
	app.Get(healthcheck.StartupEndpoint, healthcheck.New())

	if r.p.Cfg.Observability.Enabled && r.p.Cfg.Observability.Metrics.Enabled {
		path := r.p.Cfg.Observability.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, adaptor.HTTPHandler(promhttp.Handler()))
	}
}
