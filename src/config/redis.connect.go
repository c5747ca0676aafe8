package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"
)

var (
	RDB *redis.Client
	Ctx = context.Background()
)

// ConnectRedis wires the Redis client used for verification codes and
// resend rate limiting. Sentinel mode is selected with REDIS_MODE=sentinel.
func ConnectRedis() *redis.Client {
	mode := os.Getenv("REDIS_MODE")

	if mode == "sentinel" {
		masterName := os.Getenv("REDIS_MASTER_NAME")
		password := os.Getenv("REDIS_PASSWORD")
		sentinels := strings.Split(os.Getenv("REDIS_SENTINEL_ADDRS"), ",")

		RDB = redis.NewFailoverClient(&redis.FailoverOptions{
			MasterName:       masterName,
			SentinelAddrs:    sentinels,
			Password:         password,
			SentinelPassword: password,
			DB:               0,
		})
	} else {
		host := os.Getenv("REDIS_HOST")
		port := os.Getenv("REDIS_PORT")
		password := os.Getenv("REDIS_PASSWORD")
		addr := fmt.Sprintf("%s:%s", host, port)

		RDB = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       0,
		})
	}

	if _, err := RDB.Ping(Ctx).Result(); err != nil {
		log.Printf("Failed to connect to Redis (%s mode): %v", mode, err)
		return nil
	}

	log.Println("Redis connected")
	return RDB
}
