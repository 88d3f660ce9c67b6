package utils

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"safelife/config"
)

var (
	// AuthCacheClient is the dedicated client for auth token caching.
	AuthCacheClient *redis.Client
	// ResetCacheClient holds short-lived password reset tokens.
	ResetCacheClient *redis.Client
)

// InitAuthCache initializes the Redis client for auth token caching.
func InitAuthCache() {
	AuthCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAuthDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := AuthCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Auth Cache): %v", err)
	}
}

// GetAuthCacheClient returns the Redis client for auth token caching.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		InitAuthCache()
	}
	return AuthCacheClient
}

// InitResetCache initializes the Redis client for password reset tokens.
func InitResetCache() {
	ResetCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisResetDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := ResetCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Reset Cache): %v", err)
	}
}

// GetResetCacheClient returns the Redis client for password reset tokens.
func GetResetCacheClient() *redis.Client {
	if ResetCacheClient == nil {
		InitResetCache()
	}
	return ResetCacheClient
}
