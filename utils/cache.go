package utils

import (
	"context"
	"log"
	"time"

	"github.com/See2Code/transport-platform-sub000/config"

	"github.com/go-redis/redis/v8"
)

// LeaseClient is the Redis client used for the advisory dispatch leases.
var LeaseClient *redis.Client

// InitLeaseClient initializes the Redis client backing the dispatch leases.
func InitLeaseClient() {
	LeaseClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisLeaseDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := LeaseClient.Ping(ctx).Result()
	if err != nil {
		// The lease is advisory only; dispatch correctness rests on the
		// document-level claim, so a missing Redis is not fatal.
		log.Printf("Failed to connect to Redis (Lease): %v — overlap damping disabled", err)
	}
}

// GetLeaseClient returns the Redis client for dispatch leases.
func GetLeaseClient() *redis.Client {
	if LeaseClient == nil {
		InitLeaseClient()
	}
	return LeaseClient
}
