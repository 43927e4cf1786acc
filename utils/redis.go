package utils

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/alfons-cm/community-management-backend/config"
)

// InitRedis connects to redis, or returns nil when no address is
// configured. Callers fall back to in-process stores in that case.
func InitRedis(cfg *config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		log.Println("redis not configured, using in-memory login attempt tracking")
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect to redis at %s: %v", cfg.RedisAddr, err)
	}
	return client
}
