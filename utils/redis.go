package utils

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

var RDB *redis.Client

// ConnectRedis initializes the Redis client used for FX-rate caching. Redis
// is optional: a missing URL or a failed ping leaves RDB nil and the caller
// runs uncached.
func ConnectRedis(redisURL string) {
	if redisURL == "" {
		logrus.Info("REDIS_URL not set, FX rate caching disabled")
		return
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		logrus.WithError(err).Warn("Invalid REDIS_URL, FX rate caching disabled")
		return
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logrus.WithError(err).Warn("Redis unreachable, FX rate caching disabled")
		return
	}

	RDB = client
	logrus.Info("Connected to Redis")
}
