package app

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/Alijeyrad/libremedic_admin/config"
	"github.com/Alijeyrad/libremedic_admin/pkg/authorize"
	"github.com/Alijeyrad/libremedic_admin/pkg/clinicapi"
	"github.com/Alijeyrad/libremedic_admin/pkg/observability"
	redispkg "github.com/Alijeyrad/libremedic_admin/pkg/redis"
)

// InfraModule provides all infrastructure dependencies.
var InfraModule = fx.Module("infra",
	fx.Provide(ProvideRedis),
	fx.Provide(ProvideAuthorization),
	fx.Provide(ProvideOTel),
	fx.Provide(ProvideClinicClient),
)

// ProvideRedis returns a nil client when redis.addr is blank; consumers fall
// back to in-process storage.
func ProvideRedis(lc fx.Lifecycle, cfg *config.Config) (*redis.Client, error) {
	if !cfg.Redis.Enabled() {
		slog.Info("redis disabled, sessions and rate limits stay in memory")
		return nil, nil
	}
	rdb, err := redispkg.NewRedisFromCentral(context.Background(), cfg.Redis)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("closing Redis connection")
			return rdb.Close()
		},
	})
	return rdb, nil
}

func ProvideAuthorization(cfg *config.Config) (authorize.IAuthorization, error) {
	auth, err := authorize.NewSeeded(context.Background(), slog.Default())
	if err != nil {
		return nil, err
	}
	slog.Info("screen authorization ready",
		"enabled", cfg.Authorization.Enabled,
		"default_role", cfg.Authorization.DefaultRole,
	)
	return auth, nil
}

func ProvideClinicClient(cfg *config.Config) (*clinicapi.Client, error) {
	return clinicapi.NewFromConfig(cfg.API, clinicapi.WithLogger(slog.Default()))
}

func ProvideOTel(lc fx.Lifecycle, cfg *config.Config) (*observability.Provider, error) {
	if !cfg.Observability.Enabled {
		return nil, nil
	}
	provider, err := observability.InitTelemetry(context.Background(),
		observability.FromCentralConfig(cfg.Observability, cfg.Server.Environment))
	if err != nil {
		return nil, err
	}
	slog.Info("observability initialized",
		"tracing", cfg.Observability.Tracing.Enabled,
		"metrics", cfg.Observability.Metrics.Enabled,
	)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("shutting down observability providers")
			return provider.Shutdown(ctx)
		},
	})
	return provider, nil
}
