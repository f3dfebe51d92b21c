package config

import "time"

type CacheConfig struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	TTL           time.Duration
}

func (c CacheConfig) Enabled() bool {
	return c.RedisAddr != ""
}
