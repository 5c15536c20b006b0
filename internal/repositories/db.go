// Package repositories provides the data access layer over the MongoDB
// document store. Collections are addressed by logical name; repositories
// take the database handle through their constructors so tests can
// substitute a fake.
package repositories

import (
	"context"
	"log"
	"time"

	"cashper/internal/config"
	"cashper/internal/repositories/cache"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DB is the process-wide database handle, set by InitDB and handed to
// repository constructors from the entrypoint.
var DB *mongo.Database

// Client is the underlying Mongo client, kept for shutdown.
var Client *mongo.Client

// CacheService caches statistics and dashboard payloads.
var CacheService *cache.CacheService

const defaultOpTimeout = 5 * time.Second

// InitDB connects to MongoDB with connection pooling and initializes the
// Redis cache service.
func InitDB() error {
	uri := config.GetEnv("MONGO_URL", "mongodb://localhost:27017")
	dbName := config.GetEnv("MONGO_DB", "cashper")

	clientOptions := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(uint64(config.GetIntEnv("MONGO_MAX_POOL_SIZE", 100))).
		SetMinPoolSize(uint64(config.GetIntEnv("MONGO_MIN_POOL_SIZE", 5))).
		SetMaxConnIdleTime(config.GetDurationEnv("MONGO_MAX_IDLE_TIME", 30*time.Minute))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return err
	}

	Client = client
	DB = client.Database(dbName)
	log.Println("✅ Connected to MongoDB with connection pooling")

	redisCfg := &cache.RedisConfig{
		Host:     config.GetEnv("REDIS_HOST", "localhost"),
		Port:     config.GetEnv("REDIS_PORT", "6379"),
		Password: config.GetEnv("REDIS_PASSWORD", ""),
		DB:       config.GetIntEnv("REDIS_DB", 0),
	}
	CacheService = cache.NewCacheService(cache.NewRedisClient(redisCfg), 5*time.Minute)

	return nil
}

// CloseDB disconnects the Mongo client and the cache service.
func CloseDB() {
	if Client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := Client.Disconnect(ctx); err != nil {
			log.Printf("⚠️ Failed to close MongoDB connection: %v", err)
		}
	}
	if CacheService != nil {
		if err := CacheService.Close(); err != nil {
			log.Printf("⚠️ Failed to close Redis connection: %v", err)
		}
	}
}

// opContext returns the bounded context used for single store calls.
func opContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, defaultOpTimeout)
}
