package initializers

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"library-service/internals/config"
)

// ConnectRedis opens the session store when REDIS_ADDR is set. Returning nil
// is not an error: without Redis the service runs with stateless tokens only,
// so logout cannot revoke a live token early.
func ConnectRedis(cfg config.Config, log *logrus.Logger) *redis.Client {
	if cfg.RedisAddr == "" {
		log.Info("REDIS_ADDR not set, session revocation disabled")
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.WithError(err).Warn("redis connection failed, session revocation disabled")
		return nil
	}
	return client
}
