package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/fadilmartias/resume-matcher/internal/config"
	"github.com/fadilmartias/resume-matcher/internal/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ConnectRedis dials redis and pings it, backing off between attempts.
func ConnectRedis(ctx context.Context, cfg config.CacheConfig, maxRetries int, log *zap.Logger) (*redis.Client, error) {
	log = logger.OrNop(log)
	if maxRetries <= 0 {
		maxRetries = 1
	}

	client := redis.NewClient(&redis.Options{
		Addr:            cfg.RedisAddr,
		Password:        cfg.RedisPassword,
		DB:              cfg.RedisDB,
		MaxRetries:      3,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     3 * time.Second,
		WriteTimeout:    3 * time.Second,
	})

	var err error
	for i := range maxRetries {
		if i > 0 {
			backoff := time.Duration(1<<uint(i)) * time.Second
			log.Info("waiting before redis retry", zap.Duration("backoff", backoff))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				_ = client.Close()
				return nil, ctx.Err()
			}
		}

		err = client.Ping(ctx).Err()
		if err == nil {
			log.Info("redis connected", zap.String("addr", cfg.RedisAddr), zap.Int("attempts", i+1))
			return client, nil
		}
		log.Warn("redis ping failed", zap.Int("attempt", i+1), zap.Int("max_retries", maxRetries), zap.Error(err))
	}

	_ = client.Close()
	return nil, fmt.Errorf("failed to connect to Redis after %d attempts: %w", maxRetries, err)
}
