package cache

import (
	"fmt"

	"github.com/redis/go-redis/v9"
)

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func NewRedisClient(cfg *RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// Cache keys for aggregate payloads that are expensive to rebuild.
const (
	KeyLoanStatistics   = "admin:loan:statistics"
	KeyLoanDistribution = "admin:reports:loan-distribution"
	KeyInsuranceDist    = "admin:reports:insurance-distribution"
)

// AnalyticsKey builds the cache key for a reports analytics range.
func AnalyticsKey(dateRange string) string {
	return "admin:reports:analytics:" + dateRange
}
