package helpers

import (
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds a redis client with short IO timeouts. The only
// caller is the rate limiter, which fails open, so a slow redis must not
// stall requests.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})
}
