package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	fiberredis "github.com/gofiber/storage/redis/v3"
	"github.com/redis/go-redis/v9"

	"github.com/Alijeyrad/libremedic_admin/config"
)

// NewLimiterWithRedis limits requests per client IP with a sliding window
// shared through Redis.
func NewLimiterWithRedis(rdb *redis.Client, cfg config.RateLimit) fiber.Handler {
	limiterCfg := limiter.Config{
		Max:               20,
		Expiration:        30 * time.Second,
		LimiterMiddleware: limiter.SlidingWindow{},
		LimitReached: func(c fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "demasiadas solicitudes"})
		},
	}
	if rdb != nil {
		limiterCfg.Storage = fiberredis.NewFromConnection(rdb)
	}
	if cfg.RequestsPerWindow > 0 {
		limiterCfg.Max = cfg.RequestsPerWindow
	}
	if cfg.WindowSeconds > 0 {
		limiterCfg.Expiration = time.Duration(cfg.WindowSeconds) * time.Second
	}
	return limiter.New(limiterCfg)
}
