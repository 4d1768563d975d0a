package utils

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"pitchbook/config"
)

// PaymentPlanCacheClient holds initiated payment plans keyed by reservation id.
var PaymentPlanCacheClient *redis.Client

// InitPaymentPlanCache initializes the Redis client for payment-plan caching.
func InitPaymentPlanCache() {
	PaymentPlanCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisPaymentPlanDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := PaymentPlanCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Payment Plans): %v", err)
	}
}

// GetPaymentPlanCacheClient returns the Redis client for payment-plan caching.
func GetPaymentPlanCacheClient() *redis.Client {
	if PaymentPlanCacheClient == nil {
		InitPaymentPlanCache()
	}
	return PaymentPlanCacheClient
}
