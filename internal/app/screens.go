package app

import (
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/Alijeyrad/libremedic_admin/config"
	"github.com/Alijeyrad/libremedic_admin/internal/session"
	"github.com/Alijeyrad/libremedic_admin/pkg/clinicapi"
)

// ScreenModule provides the services behind the admin screens.
var ScreenModule = fx.Module("screens",
	fx.Provide(
		ProvideSessionStore,
		ProvideSessionService,
	),
)

func ProvideSessionStore(rdb *redis.Client) session.Store {
	if rdb == nil {
		return session.NewMemoryStore()
	}
	return session.NewRedisStore(rdb)
}

func ProvideSessionService(client *clinicapi.Client, store session.Store, cfg *config.Config) (session.Service, error) {
	return session.New(client, store, cfg.Session, session.WithLogger(slog.Default()))
}
